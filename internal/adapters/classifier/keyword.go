// Package classifier provides local stand-ins for the external intent
// classifier: a keyword matcher for the chat REPL and tests, and an
// unconfigured stub that forces degraded mode.
package classifier

import (
	"context"
	"strings"

	"github.com/cascadebot/cascade/pkg/domain"
)

// Keyword resolves intents by case-insensitive phrase matching. It is not
// an NLU replacement; it exists so the engine can run without a hosted
// classifier. First matching phrase wins, longest phrases checked first
// per intent list order.
type Keyword struct {
	phrases []phraseRule
}

type phraseRule struct {
	intent  domain.Intent
	phrases []string
}

// NewKeyword creates a keyword classifier with the default phrase table.
func NewKeyword() *Keyword {
	return &Keyword{phrases: defaultPhrases}
}

var defaultPhrases = []phraseRule{
	{domain.IntentSetupBoxDrive, []string{"set up box drive", "setup box drive", "install box drive", "box drive"}},
	{domain.IntentSetupFolder, []string{"set up a folder", "setup folder", "create a folder", "new folder"}},
	{domain.IntentSearchFiles, []string{"search files", "find a file", "find files", "search for"}},
	{domain.IntentGetOverview, []string{"overview", "what is box", "getting started"}},
	{domain.IntentGetTraining, []string{"training", "learn box", "tutorial"}},
	{domain.IntentAccessFromMobile, []string{"from my phone", "on mobile", "mobile access", "from mobile"}},
	{domain.IntentViewOfficeDocOnMobile, []string{"office on my phone", "word on mobile", "excel on mobile", "office document on mobile"}},
	{domain.IntentViewOfficeDoc, []string{"view office", "open a word", "open an excel", "view a document"}},
	{domain.IntentEditOfficeDoc, []string{"edit office", "edit a word", "edit an excel", "edit a document"}},
	{domain.IntentSendDocToDocusign, []string{"docusign", "send for signature", "sign a document"}},
	{domain.IntentLinkFile, []string{"shared link", "share a link", "link to a file", "share a file"}},
	{domain.IntentRevokeAccess, []string{"revoke access", "remove access", "remove a collaborator"}},
	{domain.IntentCustomizeURL, []string{"customize url", "custom url", "change my url"}},
	{domain.IntentBestPractices, []string{"best practices", "recommendations"}},
}

// IsConfigured always reports true for the keyword matcher.
func (k *Keyword) IsConfigured() bool { return true }

// Classify resolves the top intent, or the unresolved sentinel when no
// phrase matches.
func (k *Keyword) Classify(ctx context.Context, utterance string) (domain.Intent, error) {
	lowered := strings.ToLower(utterance)
	for _, rule := range k.phrases {
		for _, phrase := range rule.phrases {
			if strings.Contains(lowered, phrase) {
				return rule.intent, nil
			}
		}
	}
	return domain.IntentNone, nil
}

// Unconfigured reports a missing classifier deployment, putting the
// engine in degraded mode.
type Unconfigured struct{}

// IsConfigured always reports false.
func (Unconfigured) IsConfigured() bool { return false }

// Classify must never be called in degraded mode; returning the sentinel
// keeps a misbehaving caller harmless.
func (Unconfigured) Classify(ctx context.Context, utterance string) (domain.Intent, error) {
	return domain.IntentNone, nil
}
