package userchoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyPath(t *testing.T) {
	assert.Equal(t,
		`SOFTWARE\Microsoft\Windows\CurrentVersion\Explorer\FileExts\.Foo`,
		KeyPath(".Foo", false))
	assert.Equal(t,
		`SOFTWARE\Microsoft\Windows\Shell\Associations\UrlAssociations\https`,
		KeyPath("https", true))
	assert.Equal(t,
		`SOFTWARE\Microsoft\Windows\Shell\Associations\UrlAssociations\mailto\UserChoice`,
		ChoicePath("mailto"))
	assert.Equal(t,
		`SOFTWARE\Microsoft\Windows\CurrentVersion\Explorer\FileExts\.txt\UserChoice`,
		ChoicePath(".txt"))
}

func TestValidateAssocID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
		ext   bool
	}{
		{".txt", true, true},
		{"http", true, false},
		{".tar.gz", true, true},
		{"", false, false},
		{".", false, true},
		{`..\x`, false, true},
		{"a\x00b", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidateAssocID(tt.id)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidAssocID)
			}
			assert.Equal(t, tt.ext, IsExtension(tt.id))
		})
	}
}

func TestAssocIDFromPath(t *testing.T) {
	tests := []struct {
		path string
		id   string
		uri  bool
		ok   bool
	}{
		{ChoicePath(".txt"), ".txt", false, true},
		{KeyPath(".txt", false), ".txt", false, true},
		{ChoicePath("https"), "https", true, true},
		{`software\microsoft\windows\currentversion\explorer\fileexts\.MD\userchoice`, ".MD", false, true},
		{FileExtsPath, "", false, false},
		{FileExtsPath + `\.txt\OpenWithList`, "", false, false},
		{`SOFTWARE\Classes\.txt`, "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			id, uri, ok := AssocIDFromPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.uri, uri)
		})
	}
}
