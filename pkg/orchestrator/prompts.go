package orchestrator

import (
	"fmt"

	"github.com/entrhq/pagesage/pkg/types"
)

// Instruction preambles sent ahead of the page text. They ask for plain
// declarative (da/dearu) style Japanese output.
const (
	SummaryPreamble = "以下の文章を要約せよ。1. 内容をわかりやすく整理し、簡潔にまとめる。2. 文体は必ず「だ・である調」で統一する。3. 重要なポイントは漏らさず、読者が理解できる形でまとめる。"

	EssencePreamble = "以下の文章を読み、その**構造的な課題**、**社会的文脈**、または**未来への影響**という観点から分析し、記事の**真の本質**を深く考察した上で、**簡潔な一文**で示せ。文体は「だ・である調」を用いること。"
)

// Preamble returns the instruction block for kind.
func Preamble(kind types.RequestKind) (string, error) {
	switch kind {
	case types.RequestSummary:
		return SummaryPreamble, nil
	case types.RequestEssence:
		return EssencePreamble, nil
	default:
		return "", fmt.Errorf("unsupported request kind %q", kind)
	}
}

// BuildPrompt joins the preamble for kind and the page text with a blank line.
// The page text is passed through whole.
func BuildPrompt(kind types.RequestKind, pageText string) (string, error) {
	preamble, err := Preamble(kind)
	if err != nil {
		return "", err
	}
	return preamble + "\n\n" + pageText, nil
}
