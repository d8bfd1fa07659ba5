// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synthesize

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pdiddy/equity-scout/pkg/types"
)

// reportInstruction is the system prompt for report generation. The section
// structure is fixed; the model fills it from the retrieved context.
const reportInstruction = `You are an expert equity research analyst preparing a comprehensive report.

Create a well-structured research report with these sections:

1. EXECUTIVE SUMMARY (2-3 sentences)
2. KEY FINDINGS (3-5 bullet points)
3. DETAILED ANALYSIS (2-3 paragraphs)
4. IMPORTANT CONSIDERATIONS (risks, limitations)

Use professional financial language. Be specific and data-driven when possible.
Cite sources inline using [Source: URL] format.`

// reportPromptTmpl renders the user content for the report completion call.
var reportPromptTmpl = template.Must(template.New("report").Parse(`Company: {{.CompanyName}}
Research Intent: {{.ResearchIntent}}
Key Topics: {{.KeyTopics}}

Context from sources:
{{.Context}}

Question: {{.Question}}

Generate a comprehensive research report based on the available information.`))

// renderReportPrompt fills the report template.
func renderReportPrompt(intent types.ResearchIntent, context, question string) (string, error) {
	var buf bytes.Buffer
	err := reportPromptTmpl.Execute(&buf, struct {
		CompanyName    string
		ResearchIntent string
		KeyTopics      string
		Context        string
		Question       string
	}{
		CompanyName:    intent.CompanyName,
		ResearchIntent: intent.ResearchIntent,
		KeyTopics:      strings.Join(intent.KeyTopics, ", "),
		Context:        context,
		Question:       question,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// noDataContent is the narrative body of the no-data report.
const noDataContent = `# Unable to Generate Report

No sources could be loaded for analysis. This could be due to:
- Invalid or inaccessible URLs
- Network connectivity issues
- Source websites blocking automated access

Please try:
1. Checking the URLs are correct and accessible
2. Using different sources
3. Reformulating your query`
