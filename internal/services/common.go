package services

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"

	"gorm.io/datatypes"
)

func calculateTotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	return pages
}

// generateRandomToken returns a 64-char hex token for refresh tokens.
func generateRandomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform is broken; an empty
		// token would be rejected downstream anyway.
		return ""
	}
	return hex.EncodeToString(b)
}

// toJSON marshals into a JSONB column value; nil input yields a nil column.
func toJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

// fromJSON unmarshals a JSONB column into target; empty columns are skipped.
func fromJSON(data datatypes.JSON, target interface{}) {
	if len(data) == 0 {
		return
	}
	_ = json.Unmarshal(data, target)
}
