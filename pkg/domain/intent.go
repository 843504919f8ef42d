package domain

// Intent is a label from the classifier's closed vocabulary.
type Intent string

// The recognized vocabulary. Labels are wire values shared with the
// classifier deployment; they are not normalized here.
const (
	IntentNone                  Intent = "None" // unresolved sentinel
	IntentSetupBoxDrive         Intent = "setupboxdrive"
	IntentSetupFolder           Intent = "setupfolder"
	IntentSearchFiles           Intent = "searchfiles"
	IntentGetOverview           Intent = "getoverview"
	IntentGetTraining           Intent = "gettraining"
	IntentAccessFromMobile      Intent = "acceesfrommobile"
	IntentViewOfficeDoc         Intent = "viewofficedocument"
	IntentViewOfficeDocOnMobile Intent = "viewofficedocumentonmobile"
	IntentEditOfficeDoc         Intent = "editofficedocument"
	IntentSendDocToDocusign     Intent = "senddoctodocusign"
	IntentLinkFile              Intent = "linkfile"
	IntentRevokeAccess          Intent = "revokeaccess"
	IntentCustomizeURL          Intent = "customizeURL"
	IntentBestPractices         Intent = "bestpractices"
)

// Vocabulary lists every recognizable intent, excluding the sentinel.
var Vocabulary = []Intent{
	IntentSetupBoxDrive,
	IntentSetupFolder,
	IntentSearchFiles,
	IntentGetOverview,
	IntentGetTraining,
	IntentAccessFromMobile,
	IntentViewOfficeDoc,
	IntentViewOfficeDocOnMobile,
	IntentEditOfficeDoc,
	IntentSendDocToDocusign,
	IntentLinkFile,
	IntentRevokeAccess,
	IntentCustomizeURL,
	IntentBestPractices,
}

// Recognized reports whether the intent is a real label rather than the
// unresolved sentinel (or an empty value from a misbehaving classifier).
func (i Intent) Recognized() bool {
	return i != IntentNone && i != ""
}

// Outcome is the Intent Router's verdict for one routed label.
type Outcome int

const (
	OutcomeResolved Outcome = iota
	OutcomeUnresolved
)

// Decision is the Escalation Policy's verdict for one unresolved turn.
type Decision int

const (
	DecisionReprompted Decision = iota
	DecisionEscalated
)
