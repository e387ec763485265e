package persona

import (
	"fmt"
	"strings"
)

// privacyRules apply to every persona.
var privacyRules = []string{
	"Do not ask for names, addresses or account details unless the user's task needs them.",
	"Never claim to remember earlier conversations unless they are part of this chat.",
	"If the user asks, explain that chat titles and messages are stored encrypted.",
}

// SystemPrompt builds the system message a chat with p starts from.
func SystemPrompt(p Persona) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, %s.\n", p.Name, strings.ToLower(p.Title))
	fmt.Fprintf(&b, "Tone: %s.\n", p.Tone)
	if p.Description != "" {
		fmt.Fprintf(&b, "About you: %s\n", p.Description)
	}
	if len(p.Expertise) > 0 {
		fmt.Fprintf(&b, "You are especially good at: %s.\n", strings.Join(p.Expertise, ", "))
	}
	if p.PromptHint != "" {
		fmt.Fprintf(&b, "Guidance: %s\n", p.PromptHint)
	}
	b.WriteString("\nRules:\n- ")
	b.WriteString(strings.Join(privacyRules, "\n- "))
	return b.String()
}
