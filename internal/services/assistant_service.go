package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/propdash/portfolio-service/internal/constants"
	"github.com/propdash/portfolio-service/internal/models"
	"github.com/propdash/portfolio-service/internal/store"
)

type AssistantAction struct {
	Label string `json:"label"`
	Type  string `json:"type"`
	Data  string `json:"data,omitempty"`
}

type AssistantReply struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Sources   []string          `json:"sources,omitempty"`
	Actions   []AssistantAction `json:"actions,omitempty"`
}

// assistantRule fires when the lower-cased message contains any keyword.
type assistantRule struct {
	name     string
	keywords []string
	respond  func(a *AssistantService, role models.Role, matched string) AssistantReply
}

// AssistantService answers chat messages from an ordered keyword rule list.
// The first matching rule wins; no rule means the help text.
type AssistantService struct {
	store           *store.Store
	thresholdMonths int
	rules           []assistantRule
	now             func() time.Time
}

func NewAssistantService(s *store.Store, thresholdMonths int) *AssistantService {
	return &AssistantService{
		store:           s,
		thresholdMonths: thresholdMonths,
		rules:           defaultAssistantRules(),
		now:             time.Now,
	}
}

func defaultAssistantRules() []assistantRule {
	return []assistantRule{
		{name: "property-search", keywords: []string{"sandton", "office park"}, respond: (*AssistantService).propertySearch},
		{name: "occupancy", keywords: []string{"occupancy"}, respond: (*AssistantService).occupancy},
		{name: "financial", keywords: []string{"financial", "revenue", "noi"}, respond: (*AssistantService).financial},
		{name: "lease", keywords: []string{"lease", "expir"}, respond: (*AssistantService).leases},
	}
}

func (a *AssistantService) Reply(role models.Role, msg string) AssistantReply {
	lower := strings.ToLower(msg)
	for _, rule := range a.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.respond(a, role, kw)
			}
		}
	}
	return a.help(role)
}

func (a *AssistantService) reply(content string) AssistantReply {
	return AssistantReply{
		ID:        uuid.NewString(),
		Content:   content,
		Timestamp: a.now().UTC(),
	}
}

func roleAccessDescription(role models.Role) string {
	switch role {
	case models.RoleExecutive:
		return "Full portfolio access"
	case models.RoleAssetManager:
		return "Portfolio & property data"
	case models.RoleFinance:
		return "Financial data access"
	default:
		return "Limited access"
	}
}

var printer = message.NewPrinter(language.English)

func (a *AssistantService) propertySearch(_ models.Role, matched string) AssistantReply {
	found := FilterProperties(a.store.Properties(), PropertyFilter{Query: matched})
	found = SortProperties(found, SortByName, SortAsc)

	var b strings.Builder
	if len(found) == 0 {
		fmt.Fprintf(&b, "I couldn't find any properties matching %q.", matched)
		return a.reply(b.String())
	}
	fmt.Fprintf(&b, "I found %d properties matching %q:\n", len(found), matched)
	for _, p := range found {
		b.WriteString(printer.Sprintf("\n**%s** - %.0f sqm, %.0f%% occupied, %s", p.Name, p.Metrics.Size, p.Metrics.OccupancyRate, p.Location.Region))
	}
	b.WriteString("\n\nWould you like detailed information on any of these properties?")

	r := a.reply(b.String())
	r.Sources = []string{"Properties Database", "Location Index"}
	r.Actions = []AssistantAction{
		{Label: "View " + found[0].Name, Type: "view-property", Data: found[0].ID},
		{Label: "Show on Map", Type: "show-map"},
	}
	return r
}

func (a *AssistantService) occupancy(role models.Role, _ string) AssistantReply {
	props := a.store.Properties()
	metrics := ComputePortfolioMetrics(props)

	var b strings.Builder
	fmt.Fprintf(&b, "Based on your %s:\n\n", roleAccessDescription(role))
	if !metrics.HasData {
		b.WriteString("There are no active properties to report occupancy for.")
		return a.reply(b.String())
	}
	fmt.Fprintf(&b, "**Current Portfolio Occupancy: %.1f%%**\n", metrics.AverageOccupancy)
	for _, tb := range ComputeBreakdownByType(props) {
		subset := FilterProperties(props, PropertyFilter{Type: string(tb.Type), Status: string(models.PropertyStatusActive)})
		fmt.Fprintf(&b, "\n• %s: %.1f%%", tb.Type, ComputePortfolioMetrics(subset).AverageOccupancy)
	}

	r := a.reply(b.String())
	r.Sources = []string{"Occupancy Database"}
	return r
}

func (a *AssistantService) financial(role models.Role, _ string) AssistantReply {
	if !role.HasFinancialAccess() {
		return a.reply(constants.FinancialAccessRefusal)
	}
	props := a.store.Properties()
	metrics := ComputePortfolioMetrics(props)
	tx := ComputeTransactionSummary(a.store.Transactions())

	top := SortProperties(FilterProperties(props, PropertyFilter{Status: string(models.PropertyStatusActive)}), SortByRevenue, SortDesc)
	if len(top) > 3 {
		top = top[:3]
	}

	var b strings.Builder
	b.WriteString("**Portfolio Financial Overview:**\n\n")
	b.WriteString(printer.Sprintf("Portfolio Value: R %.0f\n", metrics.TotalValue))
	b.WriteString(printer.Sprintf("Gross Annual Revenue: R %.0f\n", metrics.TotalRevenue))
	b.WriteString(printer.Sprintf("Average ROI: %.2f%%\n", metrics.AverageROI))
	b.WriteString(printer.Sprintf("Net Transaction Profit/Loss: R %.0f\n", tx.NetProfitLoss))
	if len(top) > 0 {
		b.WriteString("\nTop performers by revenue:")
		for i, p := range top {
			b.WriteString(printer.Sprintf("\n%d. %s - R %.0f", i+1, p.Name, p.Metrics.AnnualRevenue))
		}
	}

	r := a.reply(b.String())
	r.Sources = []string{"Financial Database", "Transaction History"}
	r.Actions = []AssistantAction{{Label: "View Full Financial Report", Type: "view-financials"}}
	return r
}

func (a *AssistantService) leases(_ models.Role, _ string) AssistantReply {
	now := a.now()
	tenants := RefreshTenantStatuses(a.store.Tenants(), now, a.thresholdMonths)
	expiring := SortTenants(FilterTenants(tenants, TenantFilter{Status: string(models.TenantStatusExpiringSoon)}), TenantSortExpiry, now)

	var b strings.Builder
	fmt.Fprintf(&b, "**Upcoming Lease Expiries (Next %d months):**\n\n", a.thresholdMonths)
	if len(expiring) == 0 {
		b.WriteString("No leases expire in this window.")
	} else {
		var rental float64
		for _, t := range expiring {
			rental += t.TotalMonthlyRental
		}
		b.WriteString(printer.Sprintf("%d tenants expiring, representing R %.0f in monthly rental:\n", len(expiring), rental))
		for _, t := range expiring {
			expiry, _ := t.EarliestExpiry()
			b.WriteString(printer.Sprintf("\n• %s - %.0f sqm (%s)", t.Name, t.TotalArea, expiry.Format("Jan 2006")))
		}
	}

	r := a.reply(b.String())
	r.Sources = []string{"Lease Management System", "Tenancy Database"}
	r.Actions = []AssistantAction{{Label: "View All Expiries", Type: "view-tenants"}}
	return r
}

func (a *AssistantService) help(role models.Role) AssistantReply {
	var b strings.Builder
	b.WriteString("I can help you with:\n\n")
	b.WriteString("• Property information and search\n")
	b.WriteString("• Portfolio performance metrics\n")
	b.WriteString("• Occupancy and tenancy data\n")
	if role.HasFinancialAccess() {
		b.WriteString("• Financial analysis and reports\n")
	}
	b.WriteString("• Location-based queries\n")
	b.WriteString("• Market comparisons\n\n")
	b.WriteString("What specific information are you looking for?")
	return a.reply(b.String())
}

// Greeting is the first assistant message of a conversation.
func (a *AssistantService) Greeting() AssistantReply {
	return a.reply("Hello! I'm your portfolio assistant. I can help you find information across your entire portfolio, answer questions about properties, financials, and more. What would you like to know?")
}

// QuickPrompts suggests questions for the view the user is on.
func QuickPrompts(view models.View) []string {
	switch view {
	case models.ViewMap:
		return []string{
			"Show all properties in Gauteng region",
			"Which areas have the highest concentration of our assets?",
			"Find properties near Sandton City",
		}
	case models.ViewFinancial:
		return []string{
			"What is our total debt-to-equity ratio?",
			"Compare budget vs actuals for Q4",
			"Show me properties with negative cash flow",
		}
	case models.ViewProperties:
		return []string{
			"List all retail properties over 10,000 sqm",
			"Which properties are vacant or partially vacant?",
			"Show properties with rentals below market rate",
		}
	default:
		return []string{
			"What is our current portfolio occupancy rate?",
			"Show me properties with lease expiries in the next 6 months",
			"What are the top 5 performing properties by revenue?",
		}
	}
}
