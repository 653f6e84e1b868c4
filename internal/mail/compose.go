package mail

import (
	"context"
	"strings"

	"github.com/mailbridge/mailbridge/internal/applescript"
)

// splitAddresses splits a comma-separated recipient list, trimming blanks.
func splitAddresses(list string) []string {
	var out []string
	for _, addr := range strings.Split(list, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// recipientsFragment emits one make-new statement per address for the given
// recipient class (to, cc, bcc) of msgVar.
func recipientsFragment(s *applescript.Script, msgVar, class, list string) {
	for _, addr := range splitAddresses(list) {
		s.Linef("make new %[1]s recipient at end of %[1]s recipients of %[2]s with properties {address:%[3]s}",
			class, msgVar, applescript.Quote(addr))
	}
}

// Compose creates and sends a new message from the named account. to, cc
// and bcc take comma-separated address lists; cc and bcc may be empty.
func (c *Client) Compose(ctx context.Context, account, to, subject, body, cc, bcc string) (string, error) {
	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Line(`set outputText to "COMPOSING EMAIL" & return & return`)
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			s.Linef("set newMessage to make new outgoing message with properties {subject:%s, content:%s, visible:false}",
				applescript.Quote(subject), applescript.Quote(body))
			s.Line("set sender of newMessage to targetAccount")
			recipientsFragment(s, "newMessage", "to", to)
			recipientsFragment(s, "newMessage", "cc", cc)
			recipientsFragment(s, "newMessage", "bcc", bcc)
			s.Line("send newMessage")
			s.Linef(`set outputText to outputText & "%s Email sent successfully!" & return & return`, readGlyph)
			s.Line(`set outputText to outputText & "From: " & name of targetAccount & return`)
			s.Linef(`set outputText to outputText & "To: %s" & return`, applescript.Escape(to))
			if cc != "" {
				s.Linef(`set outputText to outputText & "CC: %s" & return`, applescript.Escape(cc))
			}
			if bcc != "" {
				s.Linef(`set outputText to outputText & "BCC: %s" & return`, applescript.Escape(bcc))
			}
			s.Linef(`set outputText to outputText & "Subject: %s" & return`, applescript.Escape(subject))
			s.Linef(`set outputText to outputText & "Body: " & %s & return`, applescript.Quote(body))
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "compose_email", s.String())
}
