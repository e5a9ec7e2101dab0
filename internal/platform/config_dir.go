package platform

import (
	"fmt"
	"os"
)

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
}

type platformService struct {
	userConfigDir func() (string, error)
	userHomeDir   func() (string, error)
}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{
		userConfigDir: os.UserConfigDir,
		userHomeDir:   os.UserHomeDir,
	}
}

// GetConfigDir returns the OS-standard configuration directory, falling back
// to the conventional location under the home directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := service.userConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := service.userHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}
