package search

import "strings"

// Simulate returns deterministic canned results keyed off the query text.
// It is the offline substitute for a live provider: demos and tests get the
// same answers every time, and the caller never blocks on the network.
func Simulate(query string) []Result {
	q := strings.ToLower(query)

	switch {
	case strings.Contains(q, "headlight") || strings.Contains(q, "headlamp"):
		return []Result{
			{
				Title:   "How to Fix Headlights That Don't Work - Car Maintenance Guide",
				Snippet: "If your headlights aren't working, first check the bulbs, then fuses, wiring connections, and finally the headlight switch and relay. Modern LED headlights may also have control modules that can fail.",
				URL:     "https://example.com/headlight-repair",
			},
			{
				Title:   "Diagnosing Headlight Problems - AutoRepair",
				Snippet: "Common causes of headlight failure include blown bulbs, corroded sockets, wiring issues, faulty relays, and bad grounding. LED headlights may also suffer from driver module failures.",
				URL:     "https://example.com/headlight-diagnosis",
			},
		}
	case strings.Contains(q, "brake"):
		return []Result{
			{
				Title:   "When to Replace Brake Pads - Car Maintenance",
				Snippet: "Signs you need new brake pads: squeaking/grinding noises, taking longer to stop, brake pedal pulsation, visible wear (less than 1/4 inch pad), and dashboard warning light.",
				URL:     "https://example.com/brake-replacement",
			},
			{
				Title:   "DIY Brake Pad Replacement - Step-by-Step Guide",
				Snippet: "To replace brake pads: 1) Loosen lug nuts, 2) Jack up car and secure, 3) Remove wheels, 4) Remove caliper bolts, 5) Pivot caliper away, 6) Remove old pads, 7) Compress caliper piston, 8) Install new pads, 9) Reinstall caliper, 10) Reinstall wheels.",
				URL:     "https://example.com/diy-brake-replacement",
			},
		}
	default:
		return []Result{
			{
				Title:   "Common Car Problems and Solutions - Auto Repair Guide",
				Snippet: "Frequent car issues include dead batteries, flat tires, overheating engines, brake problems, and check engine lights. Regular maintenance helps prevent most issues before they become serious.",
				URL:     "https://example.com/car-problems",
			},
			{
				Title:   "DIY Car Repair: When to Fix It Yourself vs. Visit a Mechanic",
				Snippet: "Simple repairs like changing air filters, replacing wiper blades, and swapping bulbs can be DIY. Leave complex jobs like transmission work, timing belt replacement, and engine repairs to professionals.",
				URL:     "https://example.com/diy-vs-mechanic",
			},
		}
	}
}
