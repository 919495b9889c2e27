package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImportRow(t *testing.T) {
	assert.Equal(t, "", validateImportRow("Jane Doe", "jane@example.com"))

	assert.Equal(t, "name is required", validateImportRow("", "jane@example.com"))
	assert.Equal(t, "name must be 2..200 characters", validateImportRow("J", "jane@example.com"))
	assert.Equal(t, "email is required", validateImportRow("Jane Doe", ""))
	assert.Equal(t, "invalid email", validateImportRow("Jane Doe", "not-an-email"))
	assert.Equal(t, "invalid email", validateImportRow("Jane Doe", "jane@"))
}

func TestIsHeaderRow(t *testing.T) {
	assert.True(t, isHeaderRow([]string{"name", "email", "phone"}))
	assert.True(t, isHeaderRow([]string{"Name", "EMAIL"}))
	assert.True(t, isHeaderRow([]string{" name ", " email "}))

	assert.False(t, isHeaderRow([]string{"Jane Doe", "jane@example.com"}))
	assert.False(t, isHeaderRow([]string{"name"}))
	assert.False(t, isHeaderRow(nil))
}

func TestCell(t *testing.T) {
	row := []string{" Jane ", "jane@example.com"}
	assert.Equal(t, "Jane", cell(row, 0))
	assert.Equal(t, "jane@example.com", cell(row, 1))
	assert.Equal(t, "", cell(row, 2)) // missing trailing column
}
