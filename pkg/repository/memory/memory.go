package memory

import (
	"github.com/secmon-lab/wayfinder/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	profile *profileRepository
	fact    *factRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		profile: newProfileRepository(),
		fact:    newFactRepository(),
	}
}

func (m *Memory) Profile() interfaces.ProfileRepository {
	return m.profile
}

func (m *Memory) Fact() interfaces.FactRepository {
	return m.fact
}

func (m *Memory) Close() error {
	return nil
}
