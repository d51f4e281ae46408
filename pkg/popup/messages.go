package popup

import (
	"fmt"

	"github.com/entrhq/pagesage/pkg/types"
)

// Messages is the popup's text catalogue.
type Messages struct {
	Initial         string
	APIUnavailable  string
	Processing      string // format verb: action name
	ResponseFailed  string // format verb: action name
	UnknownError    string
	ErrorPrefix     string
	CopyButton      string
	CopySuccess     string
	CopyFailed      string
	Loading         string
	SummarizeButton string
	EssenceButton   string
	Note            string
}

var catalogues = map[string]Messages{
	"en": {
		Initial:         `Press "Summarize" or "Essence" to start.`,
		APIUnavailable:  "Error: the messaging API is not available.",
		Processing:      "Running %s...",
		ResponseFailed:  "Failed to retrieve the %s response.",
		UnknownError:    "An unknown error occurred.",
		ErrorPrefix:     "Error: ",
		CopyButton:      "Copy result",
		CopySuccess:     "Copied",
		CopyFailed:      "Copy failed",
		Loading:         "Processing...",
		SummarizeButton: "Summarize",
		EssenceButton:   "Essence",
		Note:            "Make sure GEMINI_API_KEY is set in the environment.",
	},
	"ja": {
		Initial:         "「要約」または「本質」ボタンをクリックして処理を開始してください。",
		APIUnavailable:  "エラー: Chrome Runtime APIが利用できません。",
		Processing:      "%sを実行中...",
		ResponseFailed:  "%sの応答取得に失敗しました。",
		UnknownError:    "不明なエラーが発生しました。",
		ErrorPrefix:     "エラー: ",
		CopyButton:      "結果をコピー",
		CopySuccess:     "コピー完了",
		CopyFailed:      "コピー失敗",
		Loading:         "処理中...",
		SummarizeButton: "要約",
		EssenceButton:   "本質",
		Note:            "GEMINI_API_KEYが環境変数に設定されていることを確認してください。",
	},
}

// MessagesFor returns the catalogue for lang, falling back to English.
func MessagesFor(lang string) Messages {
	if m, ok := catalogues[lang]; ok {
		return m
	}
	return catalogues["en"]
}

// ActionName returns the button label naming kind.
func (m Messages) ActionName(kind types.RequestKind) string {
	if kind == types.RequestEssence {
		return m.EssenceButton
	}
	return m.SummarizeButton
}

func (m Messages) processing(kind types.RequestKind) string {
	return fmt.Sprintf(m.Processing, m.ActionName(kind))
}

func (m Messages) responseFailed(kind types.RequestKind) string {
	return fmt.Sprintf(m.ResponseFailed, m.ActionName(kind))
}
