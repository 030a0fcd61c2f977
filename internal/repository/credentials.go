package repository

import (
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service name for the OS credential store.
	credentialService = "skillmcp"
	// Key for the git Personal Access Token.
	gitTokenKey = "git_pat"
)

// CredentialManager handles secure storage and retrieval of the git
// authentication token in the OS credential store.
type CredentialManager struct {
	service string
}

// NewCredentialManager creates a new credential manager instance.
func NewCredentialManager() *CredentialManager {
	return &CredentialManager{service: credentialService}
}

// StoreToken stores a Personal Access Token in the OS credential store.
func (cm *CredentialManager) StoreToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("token cannot be empty")
	}
	if err := keyring.Set(cm.service, gitTokenKey, token); err != nil {
		return fmt.Errorf("failed to store token in credential store: %w", err)
	}
	return nil
}

// GetToken retrieves the stored Personal Access Token.
func (cm *CredentialManager) GetToken() (string, error) {
	token, err := keyring.Get(cm.service, gitTokenKey)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", fmt.Errorf("no access token stored - run 'skillmcp sync --token' to configure one")
		}
		return "", fmt.Errorf("failed to retrieve token from credential store: %w", err)
	}
	if strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("stored token is empty")
	}
	return token, nil
}

// DeleteToken removes the stored token. Deleting a token that does not
// exist is not an error.
func (cm *CredentialManager) DeleteToken() error {
	err := keyring.Delete(cm.service, gitTokenKey)
	if err != nil && err != keyring.ErrNotFound {
		return fmt.Errorf("failed to delete token from credential store: %w", err)
	}
	return nil
}

// HasToken checks whether a token is stored without retrieving it.
func (cm *CredentialManager) HasToken() bool {
	_, err := keyring.Get(cm.service, gitTokenKey)
	return err == nil
}
