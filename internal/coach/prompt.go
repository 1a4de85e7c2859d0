package coach

import "strings"

const systemPrompt = `You are an OKR coach guiding a user through writing one objective and a small set of measurable key results. Stay in the current phase. Never invent scores; the scores and diagnostics in the prompt come from a deterministic engine and are authoritative. Keep replies short, one question at a time.`

// BuildPrompt renders a turn request into the user prompt sent to the
// model. Keys are stable so prompt regressions are diffable.
func BuildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString("phase: ")
	b.WriteString(req.Phase)
	b.WriteString("\n")

	b.WriteString("strategy: ")
	b.WriteString(req.Strategy)
	b.WriteString("\n")

	if req.Objective != "" {
		b.WriteString("objective: ")
		b.WriteString(req.Objective)
		b.WriteString("\n")
	}

	for _, kr := range req.KeyResults {
		b.WriteString("key_result: ")
		b.WriteString(kr)
		b.WriteString("\n")
	}

	for _, f := range req.Feedback {
		b.WriteString("diagnostic: ")
		b.WriteString(f)
		b.WriteString("\n")
	}

	for _, imp := range req.Improvements {
		b.WriteString("suggestion: ")
		b.WriteString(imp)
		b.WriteString("\n")
	}

	if req.Reframe != "" {
		b.WriteString("reframe: ")
		b.WriteString(req.Reframe)
		b.WriteString("\n")
	}

	b.WriteString("user_message: ")
	b.WriteString(req.UserMessage)
	b.WriteString("\n")

	return b.String()
}
