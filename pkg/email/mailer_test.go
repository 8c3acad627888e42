package email_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/carbonshop/pkg/email"
)

func TestParams_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  email.Params
		wantErr bool
	}{
		{
			name: "valid",
			params: email.Params{
				To:       "buyer@example.com",
				Subject:  "Account approved",
				BodyHTML: "<p>Welcome aboard.</p>",
			},
		},
		{
			name: "missing recipient",
			params: email.Params{
				Subject:  "Account approved",
				BodyHTML: "<p>Welcome.</p>",
			},
			wantErr: true,
		},
		{
			name: "malformed recipient",
			params: email.Params{
				To:       "not-an-address",
				Subject:  "Account approved",
				BodyHTML: "<p>Welcome.</p>",
			},
			wantErr: true,
		},
		{
			name: "missing subject",
			params: email.Params{
				To:       "buyer@example.com",
				BodyHTML: "<p>Welcome.</p>",
			},
			wantErr: true,
		},
		{
			name: "missing body",
			params: email.Params{
				To:      "buyer@example.com",
				Subject: "Account approved",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.params.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, email.ErrInvalidParams)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewPostmarkSender_ConfigValidation(t *testing.T) {
	t.Parallel()

	valid := email.Config{
		PostmarkServerToken:  "server-token",
		PostmarkAccountToken: "account-token",
		SenderEmail:          "no-reply@example.com",
		SupportEmail:         "support@example.com",
	}

	_, err := email.NewPostmarkSender(valid)
	assert.NoError(t, err)

	missingToken := valid
	missingToken.PostmarkServerToken = ""
	_, err = email.NewPostmarkSender(missingToken)
	assert.ErrorIs(t, err, email.ErrInvalidConfig)

	badSender := valid
	badSender.SenderEmail = "nope"
	_, err = email.NewPostmarkSender(badSender)
	assert.ErrorIs(t, err, email.ErrInvalidConfig)
}

func TestDevSender_WritesFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sender := email.NewDevSender(dir)

	err := sender.Send(context.Background(), email.Params{
		To:       "seller@example.com",
		Subject:  "Project approved",
		BodyHTML: "<p>Your project is live.</p>",
		Tag:      "project-approved",
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var sawHTML, sawJSON bool
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".html":
			sawHTML = true
			assert.Contains(t, e.Name(), "project-approved")
		case ".json":
			sawJSON = true
		}
	}
	assert.True(t, sawHTML)
	assert.True(t, sawJSON)
}

func TestDevSender_RejectsInvalidParams(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sender := email.NewDevSender(dir)

	err := sender.Send(context.Background(), email.Params{To: "x"})
	assert.ErrorIs(t, err, email.ErrInvalidParams)

	entries, err := os.ReadDir(dir)
	if err == nil {
		assert.Empty(t, entries, "invalid message must not hit disk")
	} else {
		assert.True(t, os.IsNotExist(err) || strings.Contains(err.Error(), "no such file"))
	}
}
