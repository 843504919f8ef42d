// Package catalog holds the static intent→response mapping. The catalog
// is loaded once at startup; the router only ever queries it for
// recognized labels, so an unknown label here fails loudly.
package catalog

import (
	"fmt"
	"os"

	"github.com/cascadebot/cascade/pkg/domain"
	"gopkg.in/yaml.v3"
)

const linkResponse = "You work on Box files right from your laptop. Check out this [link](%s) to get started."

// defaultResponses is the stock catalog shipped with the binary.
var defaultResponses = map[domain.Intent]string{
	domain.IntentSetupBoxDrive:         fmt.Sprintf(linkResponse, "https://box.alexion.com/guides/getting-started/box-drive"),
	domain.IntentSetupFolder:           fmt.Sprintf(linkResponse, "https://alexion.service-now.com/ask?id=sc_cat_item&sys_id=2bc828c313df6200faed51a63244b0cc"),
	domain.IntentSearchFiles:           fmt.Sprintf(linkResponse, "https://box.alexion.com/guides/getting-started/sharing-collaborating"),
	domain.IntentGetOverview:           fmt.Sprintf(linkResponse, "https://box.alexion.com/guides/getting-started"),
	domain.IntentGetTraining:           fmt.Sprintf(linkResponse, "https://alexion.service-now.com/ask?id=kb_article&sys_id=53c26b2ddb46a3840dfde9ec0b961923"),
	domain.IntentAccessFromMobile:      fmt.Sprintf(linkResponse, "https://box.alexion.com/guides/box-mobile/setting-up-box-for-mobile-devices"),
	domain.IntentViewOfficeDoc:         fmt.Sprintf(linkResponse, "https://box.alexion.com/guides/box-and-office-online/opening-editing-files"),
	domain.IntentViewOfficeDocOnMobile: fmt.Sprintf(linkResponse, "https://box.alexion.com/guides/box-mobile/office-apps-for-ios"),
	domain.IntentEditOfficeDoc:         fmt.Sprintf(linkResponse, "https://box.alexion.com/guides/box-and-office-online/opening-editing-files"),
	domain.IntentSendDocToDocusign:     fmt.Sprintf(linkResponse, "https://box.alexion.com/guides/apps-integrations/box-docusign"),
	domain.IntentLinkFile:              fmt.Sprintf(linkResponse, "https://box.alexion.com/guides/getting-started/sharing-collaborating/shared-links-deep-dive"),
	domain.IntentRevokeAccess:          fmt.Sprintf(linkResponse, "https://box.alexion.com/help/Did-You-Know/DYK-Remove-Collaborator"),
	domain.IntentCustomizeURL:          fmt.Sprintf(linkResponse, "https://box.alexion.com/help/Did-You-Know/DYK-Customize-URL"),
	domain.IntentBestPractices:         fmt.Sprintf(linkResponse, "https://alexion.app.box.com/s/gf23rxrvy406hku08y8nbufa8p03acmo"),
}

// Catalog maps recognized intent labels to canned response text.
type Catalog struct {
	responses map[domain.Intent]string
}

// Default returns the embedded stock catalog.
func Default() *Catalog {
	responses := make(map[domain.Intent]string, len(defaultResponses))
	for k, v := range defaultResponses {
		responses[k] = v
	}
	return &Catalog{responses: responses}
}

// Load reads a YAML file of label→text overrides layered on top of the
// defaults. A label outside the declared vocabulary is a configuration
// error, reported at startup rather than at routing time.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var entries map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	c := Default()
	for label, text := range entries {
		intent := domain.Intent(label)
		if _, ok := defaultResponses[intent]; !ok {
			return nil, fmt.Errorf("catalog entry %q: %w", label, domain.ErrUnknownIntent)
		}
		c.responses[intent] = text
	}
	return c, nil
}

// Response returns the canned text for a recognized label.
// Returns domain.ErrUnknownIntent for anything outside the vocabulary,
// including the unresolved sentinel.
func (c *Catalog) Response(intent domain.Intent) (string, error) {
	text, ok := c.responses[intent]
	if !ok {
		return "", fmt.Errorf("label %q: %w", intent, domain.ErrUnknownIntent)
	}
	return text, nil
}

// Labels returns the catalog's vocabulary.
func (c *Catalog) Labels() []domain.Intent {
	labels := make([]domain.Intent, 0, len(c.responses))
	for intent := range c.responses {
		labels = append(labels, intent)
	}
	return labels
}
