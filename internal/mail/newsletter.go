package mail

import (
	"context"
	"strings"
)

// Bulk-mail fingerprints. Domain fragments match anywhere in the sender's
// address, keyword fragments anywhere in the sender text; both checks are
// case-insensitive.
var (
	newsletterDomains = []string{
		"mailchimp",
		"sendgrid",
		"constantcontact",
		"campaign-archive",
		"substack.com",
		"mailerlite",
		"convertkit",
		"buttondown",
		"beehiiv",
	}
	newsletterKeywords = []string{
		"newsletter",
		"noreply",
		"no-reply",
		"donotreply",
		"do-not-reply",
		"updates@",
		"news@",
		"digest",
		"notifications@",
		"marketing@",
	}
)

// IsNewsletter reports whether a sender string looks like bulk mail, based
// on known mailing-platform domains and unattended-address fragments.
func IsNewsletter(sender string) bool {
	s := strings.ToLower(sender)
	for _, d := range newsletterDomains {
		if strings.Contains(s, d) {
			return true
		}
	}
	for _, k := range newsletterKeywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// FindNewsletters scans a mailbox of one account and keeps messages whose
// sender matches the bulk-mail heuristic. The mailbox scan runs in Mail;
// the sender classification happens here, so the heuristic stays testable
// without a Mail.app round trip.
func (c *Client) FindNewsletters(ctx context.Context, account, mailbox string, max int) ([]Message, error) {
	max = clampLimit(max, 20, MaxSearchResults)

	// Over-fetch so filtering still fills the requested page.
	candidates, err := c.Search(ctx, account, mailbox, SearchCriteria{}, false, MaxSearchResults)
	if err != nil {
		return nil, err
	}

	var newsletters []Message
	for _, m := range candidates {
		if IsNewsletter(m.Sender) {
			newsletters = append(newsletters, m)
			if len(newsletters) >= max {
				break
			}
		}
	}
	return newsletters, nil
}
