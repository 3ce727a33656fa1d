package processor

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"geo-optimizer-server/internal/store"
)

// formatAmount renders a dollar amount with thousands separators, the way
// the outreach copy quotes figures ($12,000 rather than $12000).
func formatAmount(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(groups, ",")
}

// DefaultProposalMessage builds the outreach message used when the operator
// does not supply a custom one, populated from the customer's newest audit.
func DefaultProposalMessage(customer store.Customer, analysis store.SiteAnalysis) string {
	return fmt.Sprintf(`Hi %s,

I've completed a comprehensive AI optimization analysis for %s and found some critical issues that are costing you significant traffic and revenue.

🚨 KEY FINDINGS:
• Your website is losing %d%% of potential traffic to AI search engines
• Estimated monthly revenue loss: $%s
• %d critical optimization issues detected
• Your site isn't optimized for ChatGPT, Gemini, or Perplexity searches

The good news? These issues are completely fixable with our proven AI optimization framework.

I'd love to show you exactly how we can recover this lost traffic and potentially increase your revenue by 2-3x within 30 days.

Would you be interested in a 15-minute call to discuss the specific opportunities I've identified for %s?

Best regards,
AI Geo Optimization Team`,
		customer.ContactName,
		customer.WebsiteURL,
		analysis.TrafficLossPercentage,
		formatAmount(analysis.EstimatedMonthlyLoss),
		analysis.TechnicalErrors+analysis.ContentIssues,
		customer.BusinessName,
	)
}

// BuildWhatsAppMessage appends the service summary and call to action to the
// proposal message.
func BuildWhatsAppMessage(message string, serviceNames []string, totalValue int) string {
	return fmt.Sprintf("%s\n\nRecommended Services: %s\nTotal Investment: $%d+\n\nReply to this message to schedule your free consultation!",
		message, strings.Join(serviceNames, ", "), totalValue)
}

// BuildWhatsAppLink builds the wa.me deep link carrying the full message
func BuildWhatsAppLink(message string) string {
	return "https://wa.me/?text=" + url.QueryEscape(message)
}
