package orchestrator

// Reply texts. Their exact wording is part of the popup contract.
const (
	msgNoActiveTab     = "Error: could not find active tab"
	msgNoText          = "Error: no extractable text found"
	msgExtractorPrefix = "Error: "
	msgFailurePrefix   = "Error processing summary: "
	msgTimedOut        = "Error: request timed out"
	msgCanceled        = "Error: request canceled"
)

var restrictedPageMessages = map[string]string{
	"en": "This page cannot be summarized. Browser-internal pages (such as chrome:// pages or extension pages) do not allow access to their content.",
	"ja": "このページは要約できません。ブラウザの内部ページ（chrome:// や拡張機能のページなど）の内容にはアクセスできません。",
}

// RestrictedPageMessage returns the restricted-page explanation for lang,
// falling back to English.
func RestrictedPageMessage(lang string) string {
	if msg, ok := restrictedPageMessages[lang]; ok {
		return msg
	}
	return restrictedPageMessages["en"]
}
