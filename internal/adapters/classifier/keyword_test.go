package classifier_test

import (
	"context"
	"testing"

	"github.com/cascadebot/cascade/internal/adapters/classifier"
	"github.com/cascadebot/cascade/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyword_Classify(t *testing.T) {
	k := classifier.NewKeyword()
	ctx := context.Background()

	cases := []struct {
		utterance string
		want      domain.Intent
	}{
		{"How do I set up Box Drive?", domain.IntentSetupBoxDrive},
		{"I need to share a file with legal", domain.IntentLinkFile},
		{"can I open a word document on mobile", domain.IntentAccessFromMobile},
		{"how do I use office on my phone", domain.IntentViewOfficeDocOnMobile},
		{"how do I view office files", domain.IntentViewOfficeDoc},
		{"send this to docusign", domain.IntentSendDocToDocusign},
		{"remove a collaborator from my folder", domain.IntentRevokeAccess},
		{"what are the best practices", domain.IntentBestPractices},
		{"completely unrelated question", domain.IntentNone},
		{"", domain.IntentNone},
	}

	for _, tt := range cases {
		got, err := k.Classify(ctx, tt.utterance)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "utterance %q", tt.utterance)
	}
}

func TestKeyword_IsConfigured(t *testing.T) {
	assert.True(t, classifier.NewKeyword().IsConfigured())
}

func TestUnconfigured(t *testing.T) {
	var u classifier.Unconfigured
	assert.False(t, u.IsConfigured())

	got, err := u.Classify(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, domain.IntentNone, got)
}
