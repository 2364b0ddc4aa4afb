package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestValidateAuthor(t *testing.T) {
	tests := []struct {
		name    string
		input   AuthorInput
		wantErr string
	}{
		{name: "name only", input: AuthorInput{Name: "Jane Doe"}},
		{name: "all fields", input: AuthorInput{Name: "Jane", Bio: strPtr("bio"), ImageURL: strPtr("not really a url")}},
		{name: "missing name", input: AuthorInput{Bio: strPtr("bio")}, wantErr: "Name is required"},
		{name: "blank name", input: AuthorInput{Name: "   "}, wantErr: "Name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAuthor(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestValidateAuthor_Normalises(t *testing.T) {
	out, err := ValidateAuthor(AuthorInput{Name: "  Jane  ", Bio: strPtr("  "), ImageURL: strPtr(" https://x/y.png ")})
	require.NoError(t, err)

	assert.Equal(t, "Jane", out.Name)
	assert.Nil(t, out.Bio)
	require.NotNil(t, out.ImageURL)
	assert.Equal(t, "https://x/y.png", *out.ImageURL)
}

func TestValidateBook(t *testing.T) {
	published := time.Now()

	tests := []struct {
		name    string
		input   BookInput
		wantErr string
	}{
		{name: "minimal", input: BookInput{Title: "Title A", AuthorID: "a1"}},
		{name: "published with date", input: BookInput{Title: "T", AuthorID: "a1", Published: true, PublishedAt: &published}},
		{name: "missing title", input: BookInput{AuthorID: "a1"}, wantErr: "Title is required"},
		{name: "missing author", input: BookInput{Title: "T"}, wantErr: "Author is required"},
		{name: "missing both in schema order", input: BookInput{}, wantErr: "Title is required, Author is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateBook(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestValidateBook_DefaultsPublishedToFalse(t *testing.T) {
	out, err := ValidateBook(BookInput{Title: "T", AuthorID: "a1"})
	require.NoError(t, err)
	assert.False(t, out.Published)
	assert.Nil(t, out.PublishedAt)
}

func TestError_FieldMessages(t *testing.T) {
	_, err := ValidateBook(BookInput{Description: strPtr("only a description")})

	verr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{
		"title":    "Title is required",
		"authorId": "Author is required",
	}, verr.FieldMessages())
	assert.Len(t, verr.Fields, 2)
	assert.Equal(t, "title", verr.Fields[0].Field)
}

func TestAsError_Wrapped(t *testing.T) {
	_, err := ValidateAuthor(AuthorInput{})
	wrapped := errors.Join(errors.New("context"), err)

	verr, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "Name is required", verr.Error())

	_, ok = AsError(errors.New("plain"))
	assert.False(t, ok)
}
