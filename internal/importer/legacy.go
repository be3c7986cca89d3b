package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"shelfkeeper/backend/internal/model"
)

// LoadLegacy reads the fixed legacy dataset shipped with the app. The rows
// carry metadata only; ids and timestamps are stamped at import time.
func LoadLegacy(path string) ([]model.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy dataset: %w", err)
	}

	var books []model.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("failed to parse legacy dataset: %w", err)
	}
	return books, nil
}
