package cli

var (
	RunWithIO  = run
	ParseScene = parseScene
)
