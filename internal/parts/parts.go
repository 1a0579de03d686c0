// Package parts simulates car-part identification from images. There is no
// vision model behind it: the result is picked deterministically from a
// canned table so the same image always yields the same part.
package parts

import "hash/fnv"

// Part describes an identified car part.
type Part struct {
	Name         string
	Category     string
	Confidence   float64
	CommonIssues []string
}

var knownParts = []Part{
	{
		Name:         "Headlight",
		Category:     "Electrical",
		Confidence:   0.96,
		CommonIssues: []string{"Bulb burnout", "Wiring issues", "Water damage", "Cracked lens"},
	},
	{
		Name:         "Brake Pad",
		Category:     "Braking System",
		Confidence:   0.93,
		CommonIssues: []string{"Wear and tear", "Squeaking", "Reduced braking power", "Uneven wear"},
	},
	{
		Name:         "Alternator",
		Category:     "Electrical",
		Confidence:   0.91,
		CommonIssues: []string{"Battery not charging", "Electrical failures", "Strange noises", "Belt slipping"},
	},
	{
		Name:         "Fuel Pump",
		Category:     "Fuel System",
		Confidence:   0.89,
		CommonIssues: []string{"Engine sputtering", "Loss of power", "No start condition", "Whining noise"},
	},
	{
		Name:         "Air Filter",
		Category:     "Air Intake",
		Confidence:   0.95,
		CommonIssues: []string{"Reduced engine performance", "Poor fuel economy", "Engine misfires", "Dirty or clogged"},
	},
	{
		Name:         "Spark Plug",
		Category:     "Ignition System",
		Confidence:   0.94,
		CommonIssues: []string{"Engine misfires", "Rough idling", "Starting problems", "Carbon buildup"},
	},
	{
		Name:         "Radiator",
		Category:     "Cooling System",
		Confidence:   0.92,
		CommonIssues: []string{"Overheating", "Coolant leaks", "Corrosion", "Blocked fins"},
	},
	{
		Name:         "Wheel Bearing",
		Category:     "Suspension",
		Confidence:   0.87,
		CommonIssues: []string{"Grinding noise when turning", "Steering wheel vibration", "Uneven tire wear", "Play in the wheel"},
	},
}

// Identify returns the simulated part for an image. The pick is an FNV-1a
// hash of the image bytes over the table, so identical inputs identify the
// same part.
func Identify(image []byte) Part {
	h := fnv.New32a()
	h.Write(image)
	return knownParts[int(h.Sum32())%len(knownParts)]
}

// Known returns the full identification table.
func Known() []Part {
	out := make([]Part, len(knownParts))
	copy(out, knownParts)
	return out
}
