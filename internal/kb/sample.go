package kb

// SampleDocuments is the bundled car-repair knowledge used whenever no
// persisted index can be loaded. It spans the electrical, braking, cooling,
// suspension, engine, transmission, and tire domains so the relevance gate
// has something useful to match against out of the box.
func SampleDocuments() []Document {
	return []Document{
		{
			Text:     "Headlights not working can be caused by: burned out bulbs, faulty wiring, blown fuse, bad relay, or alternator problems. First check the fuse box for blown fuses, then inspect bulbs for damage, test the electrical connections, and check the relay.",
			Metadata: map[string]string{"category": "Electrical", "part": "Headlight", "issue": "Not Working"},
		},
		{
			Text:     "Noise from wheel area while driving could indicate worn wheel bearings, damaged CV joints, brake issues, or suspension problems. Jack up the car safely, spin the wheel, and listen for grinding or humming. Check for play in the wheel by grabbing at 12 and 6 o'clock positions and rocking.",
			Metadata: map[string]string{"category": "Suspension", "part": "Wheel", "issue": "Noise"},
		},
		{
			Text:     "Car not starting but lights work often indicates a starter motor issue, ignition switch problem, or fuel system failure. Check for clicking sounds when turning the key, test battery voltage, inspect starter connections, and ensure fuel pump is running.",
			Metadata: map[string]string{"category": "Electrical", "part": "Starter", "issue": "Not Starting"},
		},
		{
			Text:     "Engine overheating is commonly caused by coolant leaks, failed water pump, blocked radiator, faulty thermostat, or broken fan. Check coolant level, inspect for leaks, test radiator and cooling fan operation, and verify thermostat function.",
			Metadata: map[string]string{"category": "Cooling", "part": "Radiator", "issue": "Overheating"},
		},
		{
			Text:     "Brake pads typically last between 30,000 to 70,000 miles depending on driving habits and conditions. Signs of worn brake pads include squealing or grinding noises, vibration when braking, longer stopping distances, and brake warning light. Replace in pairs (both front or both rear).",
			Metadata: map[string]string{"category": "Braking", "part": "Brake Pads", "issue": "Worn"},
		},
		{
			Text:     "A car battery typically lasts 3-5 years. Signs of a failing battery include slow engine crank, dim headlights, electrical issues, swollen battery case, and need for frequent jump starts. Test battery voltage with a multimeter - should be around 12.6V when off and 13.7-14.7V when running.",
			Metadata: map[string]string{"category": "Electrical", "part": "Battery", "issue": "Failing"},
		},
		{
			Text:     "Check engine light illumination can be caused by oxygen sensor failure, loose gas cap, catalytic converter failure, mass airflow sensor failure, or spark plug/wire issues. Use an OBD-II scanner to retrieve the specific error code for accurate diagnosis.",
			Metadata: map[string]string{"category": "Engine", "part": "Check Engine Light", "issue": "Illuminated"},
		},
		{
			Text:     "Alternator failures can cause battery drain, dim/flickering lights, strange noises, warning lights, and dead battery. To test an alternator, check battery voltage while engine is running - should be 13.7 to 14.7V. Lower voltage indicates alternator problems.",
			Metadata: map[string]string{"category": "Electrical", "part": "Alternator", "issue": "Failing"},
		},
		{
			Text:     "Transmission fluid should be checked regularly and replaced according to manufacturer's schedule. Look for fluid that is bright red and doesn't smell burnt. Low fluid can cause hard shifting, slipping gears, surging, and overheating. Change fluid if it's dark, cloudy, or smells burnt.",
			Metadata: map[string]string{"category": "Transmission", "part": "Transmission Fluid", "issue": "Maintenance"},
		},
		{
			Text:     "Serpentine belt squealing or chirping indicates the belt is worn, loose, or misaligned. Inspect for cracks, missing chunks, glazing, or fraying. Most modern belts last 60,000-100,000 miles. Belt tensioner issues can also cause noise and should be checked.",
			Metadata: map[string]string{"category": "Engine", "part": "Serpentine Belt", "issue": "Noise"},
		},
		{
			Text:     "Tire pressure should be checked monthly and maintained at manufacturer's recommended PSI (typically found on driver's door jamb). Underinflated tires cause poor fuel economy, handling issues, and accelerated wear on outer edges. Overinflated tires cause harsh ride and accelerated wear in center of tread.",
			Metadata: map[string]string{"category": "Tires", "part": "Tire Pressure", "issue": "Maintenance"},
		},
		{
			Text:     "Oil changes are typically needed every 3,000-7,500 miles for conventional oil and 7,500-15,000 miles for synthetic oil. Check oil level when engine is cold by removing dipstick, wiping clean, reinserting, and checking level. Oil should be amber to light brown - dark or gritty oil needs changing.",
			Metadata: map[string]string{"category": "Engine", "part": "Engine Oil", "issue": "Maintenance"},
		},
	}
}
