package types

import "fmt"

// Energy is the inferred energy level of a user
type Energy string

const (
	EnergyLow    Energy = "low"
	EnergyNormal Energy = "normal"
	EnergyHigh   Energy = "high"
)

// AllEnergies returns all valid energy levels
func AllEnergies() []Energy {
	return []Energy{
		EnergyLow,
		EnergyNormal,
		EnergyHigh,
	}
}

// IsValid checks if the energy level is valid
func (e Energy) IsValid() bool {
	switch e {
	case EnergyLow,
		EnergyNormal,
		EnergyHigh:
		return true
	default:
		return false
	}
}

// Normalize returns the energy level, treating empty and unknown values as EnergyNormal.
func (e Energy) Normalize() Energy {
	if !e.IsValid() {
		return EnergyNormal
	}
	return e
}

func (e Energy) String() string {
	return string(e)
}

// ParseEnergy parses a string into an Energy
func ParseEnergy(s string) (Energy, error) {
	energy := Energy(s)
	if !energy.IsValid() {
		return "", fmt.Errorf("invalid energy: %s", s)
	}
	return energy, nil
}
