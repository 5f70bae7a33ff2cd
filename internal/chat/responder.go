// Package chat implements the storefront assistant. Replies come from
// an ordered keyword table; a few intents answer from live catalog data
// instead of canned text.
package chat

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Shyngys777/temporun/internal/catalog"
)

// Greeting opens every conversation.
const Greeting = "Сәлеметсіз бе! I'm Shyngys, your running assistant. How can I help you today with running gear or advice?"

const fallbackReply = "I don't have specific information about that. Would you like to know about our running shoes, shipping policy, or training advice?"

type rule struct {
	keyword string
	reply   string
}

// Keyword rules are matched top to bottom against the lowercased
// message; the first substring hit wins. Order therefore matters:
// specific phrases sit above the generic words they contain.
var rules = []rule{
	{"hello", "Hello! How can I help you with your running journey today?"},
	{"hi", "Hi there! I'm Shyngys, your running assistant. How can I assist you today?"},
	{"сәлем", "Сәлем! How can I assist you with your running needs today?"},

	{"shoes", "Our collection includes road running, trail running, and racing shoes from brands like Nike, Adidas, ASICS, Brooks, Hoka, and more. Are you looking for a specific type of running shoe?"},
	{"products", "We offer a wide range of running shoes, apparel, and accessories from leading brands. Is there a specific category you're interested in?"},
	{"sizing", "For running shoes, we generally recommend going half a size up from your regular shoes to allow for foot swelling during runs. You can check our detailed size guide at the Size Guide page for more specific measurements."},

	{"payment", "We accept all major credit cards, PayPal, and Apple Pay. All transactions are secure and encrypted."},
	{"shipping", "We offer free standard shipping on orders over $50. Delivery typically takes 3-5 business days within Kazakhstan. Express shipping options are available at checkout for urgent orders."},
	{"returns", "We have a 30-day return policy for unworn items in original packaging. You can initiate a return through your account or contact our customer service team for assistance."},
	{"warranty", "Most of our running shoes come with a manufacturer's warranty against defects. The specific terms vary by brand, but we're happy to assist with any warranty claims."},

	{"running tips", "Some basic running tips: start slow, maintain good posture, invest in proper running shoes, stay hydrated, and gradually increase your distance. Would you like specific advice for beginners or experienced runners?"},
	{"training", "For training plans, we recommend starting with 3 runs per week and gradually increasing. The key is consistency and listening to your body. Would you like tips for a specific race distance?"},
	{"injuries", "Common running injuries include shin splints, runner's knee, and plantar fasciitis. The best approach is prevention through proper shoes, form, and training. For existing injuries, we recommend consulting a healthcare professional."},
	{"marathon", "Marathon training typically takes 16-20 weeks. The key elements are the long run, speed work, and recovery. Kazakhstan has several marathons throughout the year, including the Almaty Marathon in April."},

	{"nike", "Nike is known for innovation and performance with popular models like Pegasus, Vaporfly, and Alphafly featuring ZoomX and Air technologies."},
	{"adidas", "Adidas offers excellent running shoes with Boost and Lightstrike cushioning. Popular models include Ultraboost, Adizero, and Terrex for trails."},
	{"asics", "ASICS is renowned for stability and support with GEL cushioning technology. The Gel-Kayano, Gel-Nimbus, and GT series are customer favorites."},
	{"brooks", "Brooks focuses exclusively on running with DNA LOFT cushioning and GuideRails support. Popular models include Ghost, Adrenaline GTS, and Glycerin."},
	{"hoka", "Hoka is known for maximum cushioning with a lightweight feel. The Clifton, Bondi, and Speedgoat are their most popular road and trail options."},

	{"location", "We have physical stores in major cities across Kazakhstan, with our flagship store in Almaty. Our products are also available through our online store with shipping nationwide."},
	{"events", "We regularly organize running events and community runs across Kazakhstan. Check our News section for upcoming events in your area!"},
	{"sale", "We currently have our seasonal sale with up to 40% off on selected running gear. You can check the Sale section on our website for all discounted items."},

	{"thank you", "You're welcome! Happy running, and don't hesitate to chat again if you have more questions!"},
	{"thanks", "You're welcome! Is there anything else I can help you with?"},
	{"goodbye", "Goodbye! Happy running, and don't hesitate to chat again if you have more questions!"},
	{"bye", "Goodbye! Happy running, and don't hesitate to chat again if you have more questions!"},
	{"рахмет", "Рахмет! Is there anything else I can help you with today?"},
}

// Responder turns one shopper message into one assistant reply.
type Responder struct {
	catalog *catalog.Service
	titler  cases.Caser
}

// NewResponder wires the assistant onto the catalog for live answers.
func NewResponder(catalogService *catalog.Service) *Responder {
	return &Responder{
		catalog: catalogService,
		titler:  cases.Title(language.English),
	}
}

// Reply resolves a message. Live intents (brand inventory, product
// search) are tried first, then the keyword table, then the fallback.
// A catalog failure on a live intent degrades to the canned answer for
// the same topic rather than erroring the conversation.
func (r *Responder) Reply(ctx context.Context, message string) string {
	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		return fallbackReply
	}

	if strings.Contains(normalized, "brand") {
		if reply, ok := r.brandsReply(ctx); ok {
			return reply
		}
		return "We carry premium running brands including Nike, Adidas, ASICS, Brooks, New Balance, Hoka, Saucony, and more. Is there a specific brand you're interested in?"
	}
	if query, ok := searchQuery(normalized); ok {
		if reply, ok := r.searchReply(ctx, query); ok {
			return reply
		}
	}

	for _, rule := range rules {
		if matches(normalized, rule.keyword) {
			return rule.reply
		}
	}
	return fallbackReply
}

// matches is substring containment, except for very short keywords like
// "hi" which must stand as their own word so they do not fire inside
// "shipping".
func matches(normalized, keyword string) bool {
	if len(keyword) > 3 {
		return strings.Contains(normalized, keyword)
	}
	for _, word := range strings.FieldsFunc(normalized, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '!' || r == '?'
	}) {
		if word == keyword {
			return true
		}
	}
	return false
}

// brandsReply lists the brands actually in the catalog instead of a
// hardcoded roster.
func (r *Responder) brandsReply(ctx context.Context) (string, bool) {
	brands, err := r.catalog.Brands(ctx, false)
	if err != nil || len(brands) == 0 {
		return "", false
	}
	names := make([]string, len(brands))
	for i, b := range brands {
		names[i] = r.titler.String(b.Name)
	}
	return "We carry premium running brands including " + joinNatural(names) + ". Is there a specific brand you're interested in?", true
}

// searchQuery extracts a product query from messages like "find pegasus"
// or "search for trail shoes".
func searchQuery(normalized string) (string, bool) {
	for _, prefix := range []string{"search for ", "search ", "find ", "looking for "} {
		if rest, ok := strings.CutPrefix(normalized, prefix); ok {
			rest = strings.TrimSpace(rest)
			if rest != "" {
				return rest, true
			}
		}
	}
	return "", false
}

func (r *Responder) searchReply(ctx context.Context, query string) (string, bool) {
	views, err := r.catalog.SearchProducts(ctx, query, 5)
	if err != nil {
		return "", false
	}
	if len(views) == 0 {
		return "I couldn't find anything matching \"" + query + "\". Try a model name like Pegasus or a category like trail.", true
	}
	names := make([]string, len(views))
	for i, v := range views {
		names[i] = v.Name
	}
	return "Here's what I found for \"" + query + "\": " + joinNatural(names) + ". Want details on any of them?", true
}

func joinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
