package ports

import "go.trai.ch/csso/internal/core/domain"

// ConfigLoader turns raw flags into the configuration of one invocation.
//
//go:generate mockgen -source=config.go -destination=mocks/mock_config.go -package=mocks
type ConfigLoader interface {
	// Load normalises flags against workDir. Invalid values yield an error with
	// domain.ErrInvalidConfig in its chain.
	Load(workDir string, flags domain.Flags) (*domain.Config, error)
}
