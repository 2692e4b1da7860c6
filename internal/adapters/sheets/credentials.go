package sheets

import (
	"fmt"
	"os"
)

// defaultCredentialsPath is where the deployment platform mounts the service-account
// secret when nothing else is configured.
const defaultCredentialsPath = "/etc/secrets/google-creds.json"

// ResolveCredentials returns the Google service-account JSON. Resolution order:
// inline JSON, then the configured file path, then the conventional secret-mount
// path.
func ResolveCredentials(inlineJSON, filePath string) ([]byte, error) {
	if inlineJSON != "" {
		return []byte(inlineJSON), nil
	}

	if filePath == "" {
		filePath = defaultCredentialsPath
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read google credentials from %s: %w", filePath, err)
	}
	return data, nil
}
