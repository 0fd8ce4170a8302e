package catalog

// exercises is the built-in bodyweight library, grouped by movement type.
var exercises = []Exercise{
	// Push
	{
		ID:           "push-ups-standard",
		Name:         "Push-Ups",
		MovementType: Push,
		MuscleGroups: []MuscleGroup{Chest, Shoulders, Triceps, CoreMuscle},
		IsPrimary:    true,
		BaseReps:     10,
		Goal:         "Control the descent; drive through your palms.",
		Instructions: []string{
			"Hands slightly wider than shoulders, fingers spread",
			"Lower until chest nearly touches floor, elbows at 45°",
			"Push up explosively while keeping core tight",
		},
		CommonMistake:     "Letting hips sag or pike up. Keep body in a straight line.",
		EasierVariant:     "Incline push-ups (hands on elevated surface)",
		HarderVariant:     "Diamond push-ups (hands close together)",
		Contraindications: []Constraint{Wrist, Shoulder},
		DifficultyLevel:   2,
	},
	{
		ID:           "push-ups-incline",
		Name:         "Incline Push-Ups",
		MovementType: Push,
		MuscleGroups: []MuscleGroup{Chest, Shoulders, Triceps},
		IsPrimary:    true,
		BaseReps:     12,
		Goal:         "Use an elevated surface to reduce load while keeping form.",
		Instructions: []string{
			"Place hands on a sturdy elevated surface (chair, counter)",
			"Walk feet back until body forms a straight line",
			"Lower chest to the edge, then push back up",
		},
		CommonMistake:     "Standing too close. Step back to get a proper angle.",
		EasierVariant:     "Wall push-ups",
		HarderVariant:     "Standard push-ups",
		Contraindications: []Constraint{Wrist},
		DifficultyLevel:   1,
	},
	{
		ID:           "pike-push-ups",
		Name:         "Pike Push-Ups",
		MovementType: Push,
		MuscleGroups: []MuscleGroup{Shoulders, Triceps, CoreMuscle},
		IsPrimary:    true,
		BaseReps:     8,
		Goal:         "Target shoulders by creating an inverted V shape.",
		Instructions: []string{
			"Start in push-up position, walk feet toward hands forming a V",
			"Bend elbows and lower head toward floor between hands",
			"Push back up to start, keeping hips high throughout",
		},
		CommonMistake:     "Not piking high enough. Get hips as high as possible.",
		EasierVariant:     "Standard push-ups",
		HarderVariant:     "Feet elevated pike push-ups",
		Contraindications: []Constraint{Wrist, Shoulder, Neck},
		DifficultyLevel:   3,
	},

	// Pull
	{
		ID:           "supermans",
		Name:         "Supermans",
		MovementType: Pull,
		MuscleGroups: []MuscleGroup{Back, Glutes, Shoulders},
		IsPrimary:    true,
		IsSupport:    true,
		BaseReps:     10,
		Goal:         "Strengthen posterior chain without equipment.",
		Instructions: []string{
			"Lie face down, arms extended overhead, legs straight",
			"Lift arms, chest, and legs off floor simultaneously",
			"Hold 1-2 seconds at top, squeezing glutes and back",
		},
		CommonMistake:     "Using momentum. Lift with control, not jerking.",
		EasierVariant:     "Lift only arms or only legs",
		HarderVariant:     "Hold at top for 3-5 seconds",
		Contraindications: []Constraint{LowerBack, Neck},
		DifficultyLevel:   2,
	},
	{
		ID:           "prone-y-raises",
		Name:         "Prone Y-Raises",
		MovementType: Pull,
		MuscleGroups: []MuscleGroup{Back, Shoulders},
		IsSupport:    true,
		BaseReps:     10,
		Goal:         "Target lower traps and improve posture.",
		Instructions: []string{
			"Lie face down, arms extended in Y shape (thumbs up)",
			"Lift arms off floor while squeezing shoulder blades",
			"Lower with control, keep head neutral",
		},
		CommonMistake:     "Craning neck up. Keep forehead near the floor.",
		EasierVariant:     "Arms at 45° (T position)",
		HarderVariant:     "Hold each rep for 3 seconds",
		Contraindications: []Constraint{Shoulder, Neck},
		DifficultyLevel:   2,
	},

	// Squat / hinge
	{
		ID:           "bodyweight-squats",
		Name:         "Squats",
		MovementType: Squat,
		MuscleGroups: []MuscleGroup{Quads, Glutes, Hamstrings, CoreMuscle},
		IsPrimary:    true,
		BaseReps:     12,
		Goal:         "Sit back and down; drive through heels to stand.",
		Instructions: []string{
			"Feet shoulder-width apart, toes slightly out",
			"Push hips back and bend knees, keeping chest up",
			"Descend until thighs parallel, then drive up through heels",
		},
		CommonMistake:     "Knees caving in. Push them out over the toes.",
		EasierVariant:     "Box squats (sit to a chair)",
		HarderVariant:     "Pause squats (3-second hold at bottom)",
		Contraindications: []Constraint{Knee},
		DifficultyLevel:   2,
	},
	{
		ID:           "glute-bridges",
		Name:         "Glute Bridges",
		MovementType: Hinge,
		MuscleGroups: []MuscleGroup{Glutes, Hamstrings, CoreMuscle},
		IsPrimary:    true,
		IsSupport:    true,
		BaseReps:     12,
		Goal:         "Squeeze glutes hard at top; don't hyperextend the back.",
		Instructions: []string{
			"Lie on back, knees bent, feet flat near glutes",
			"Drive through heels to lift hips toward ceiling",
			"Squeeze glutes at top, pause, then lower with control",
		},
		CommonMistake:   "Arching lower back. Focus on the glute squeeze, not height.",
		EasierVariant:   "Smaller range of motion",
		HarderVariant:   "Single-leg glute bridges",
		DifficultyLevel: 1,
	},
	{
		ID:           "reverse-lunges",
		Name:         "Reverse Lunges",
		MovementType: Squat,
		MuscleGroups: []MuscleGroup{Quads, Glutes, Hamstrings},
		IsPrimary:    true,
		BaseReps:     8,
		Goal:         "Step back with control; front knee tracks over ankle.",
		Instructions: []string{
			"Stand tall, step one foot straight back",
			"Lower until both knees at 90°, back knee hovering",
			"Push through front heel to return to standing",
		},
		CommonMistake:     "Front knee shooting forward. Keep the shin vertical.",
		EasierVariant:     "Hold onto something for balance",
		HarderVariant:     "Walking lunges",
		Contraindications: []Constraint{Knee},
		DifficultyLevel:   2,
	},

	// Core
	{
		ID:           "plank",
		Name:         "Plank",
		MovementType: Core,
		MuscleGroups: []MuscleGroup{CoreMuscle, Shoulders},
		IsSupport:    true,
		BaseTime:     30,
		Goal:         "Keep ribs down; squeeze glutes; breathe normally.",
		Instructions: []string{
			"Forearms on floor, elbows under shoulders",
			"Form a straight line from head to heels",
			"Brace core like expecting a punch, hold position",
		},
		CommonMistake:     "Hips too high or sagging. Check in a mirror.",
		EasierVariant:     "Kneeling plank",
		HarderVariant:     "Plank with shoulder taps",
		Contraindications: []Constraint{Wrist, Shoulder},
		DifficultyLevel:   2,
	},
	{
		ID:           "dead-bugs",
		Name:         "Dead Bugs",
		MovementType: Core,
		MuscleGroups: []MuscleGroup{CoreMuscle, HipFlexors},
		IsSupport:    true,
		BaseReps:     10,
		Goal:         "Keep lower back pressed into floor throughout.",
		Instructions: []string{
			"Lie on back, arms toward ceiling, knees at 90°",
			"Slowly extend opposite arm and leg toward floor",
			"Return to start, repeat on other side",
		},
		CommonMistake:     "Lower back arching. Flatten it before each rep.",
		EasierVariant:     "Only move legs, arms stay up",
		HarderVariant:     "Slow 3-count on each extension",
		Contraindications: []Constraint{LowerBack},
		DifficultyLevel:   2,
	},
	{
		ID:           "bird-dogs",
		Name:         "Bird Dogs",
		MovementType: Core,
		MuscleGroups: []MuscleGroup{CoreMuscle, Glutes, Back},
		IsSupport:    true,
		BaseReps:     10,
		Goal:         "Move slowly; keep hips and shoulders square.",
		Instructions: []string{
			"Start on hands and knees, wrists under shoulders",
			"Extend opposite arm and leg until parallel to floor",
			"Hold briefly, return with control, switch sides",
		},
		CommonMistake:     "Rotating hips or shoulders. Keep them level.",
		EasierVariant:     "Only extend arm or leg, not both",
		HarderVariant:     "Hold each rep for 5 seconds",
		Contraindications: []Constraint{Wrist},
		DifficultyLevel:   1,
	},
	{
		ID:           "hollow-hold",
		Name:         "Hollow Hold",
		MovementType: Core,
		MuscleGroups: []MuscleGroup{CoreMuscle, HipFlexors},
		IsSupport:    true,
		BaseTime:     20,
		Goal:         "Press lower back into floor; pull ribs down.",
		Instructions: []string{
			"Lie on back, arms overhead, legs straight",
			"Lift shoulders and legs off floor into a banana shape",
			"Keep lower back glued to floor, hold position",
		},
		CommonMistake:     "Lower back lifting. Bend knees if needed to keep contact.",
		EasierVariant:     "Bent knees, arms at sides",
		HarderVariant:     "Rock gently while holding the shape",
		Contraindications: []Constraint{LowerBack, Neck},
		DifficultyLevel:   3,
	},
	{
		ID:           "mountain-climbers",
		Name:         "Mountain Climbers",
		MovementType: Core,
		MuscleGroups: []MuscleGroup{CoreMuscle, HipFlexors, Shoulders},
		IsPrimary:    true,
		IsSupport:    true,
		BaseReps:     16,
		Goal:         "Stay low and controlled; hips stay level.",
		Instructions: []string{
			"Start in high plank position, hands under shoulders",
			"Drive one knee toward chest, then quickly switch",
			"Keep core tight and hips from bouncing",
		},
		CommonMistake:     "Hips piking up. Hold a straight plank line.",
		EasierVariant:     "Slow mountain climbers (step instead of hop)",
		HarderVariant:     "Cross-body mountain climbers",
		Contraindications: []Constraint{Wrist, Shoulder},
		DifficultyLevel:   2,
	},

	// Mobility
	{
		ID:           "cat-cow",
		Name:         "Cat-Cow",
		MovementType: Mobility,
		MuscleGroups: []MuscleGroup{Back, CoreMuscle},
		IsSupport:    true,
		BaseReps:     10,
		Goal:         "Move slowly through full range; sync with breath.",
		Instructions: []string{
			"Start on hands and knees, wrists under shoulders",
			"Inhale: drop belly, lift chest and tailbone (cow)",
			"Exhale: round spine toward ceiling, tuck chin (cat)",
		},
		CommonMistake:     "Moving too fast. Take 2-3 seconds per position.",
		EasierVariant:     "Seated cat-cow (on chair)",
		HarderVariant:     "Add 3-second pause in each position",
		Contraindications: []Constraint{Wrist},
		DifficultyLevel:   1,
	},
	{
		ID:           "hip-circles",
		Name:         "Hip Circles",
		MovementType: Mobility,
		MuscleGroups: []MuscleGroup{HipFlexors, Glutes},
		IsSupport:    true,
		BaseReps:     8,
		Goal:         "Open up tight hips with controlled circles.",
		Instructions: []string{
			"Stand on one leg, hold a wall for balance if needed",
			"Lift knee, rotate hip out and around in circles",
			"Reverse direction, then switch legs",
		},
		CommonMistake:     "Moving from the knee. Initiate from the hip joint.",
		EasierVariant:     "Smaller circles with support",
		HarderVariant:     "No support, larger circles",
		Contraindications: []Constraint{Knee},
		DifficultyLevel:   1,
	},
	{
		ID:           "worlds-greatest-stretch",
		Name:         "World's Greatest Stretch",
		MovementType: Mobility,
		MuscleGroups: []MuscleGroup{HipFlexors, Hamstrings, Back, Shoulders},
		IsSupport:    true,
		BaseReps:     6,
		Goal:         "Full-body opener; hit multiple areas in one move.",
		Instructions: []string{
			"Lunge forward, place both hands inside front foot",
			"Rotate torso, reach same-side arm toward ceiling",
			"Hold briefly, return hand down, step back, switch sides",
		},
		CommonMistake:     "Rushing. Spend 2-3 seconds in the twist.",
		EasierVariant:     "Skip the rotation, just hold the lunge",
		HarderVariant:     "Straighten the front leg for a hamstring stretch",
		Contraindications: []Constraint{Knee, LowerBack},
		DifficultyLevel:   2,
	},
	{
		ID:           "thoracic-rotations",
		Name:         "Thoracic Rotations",
		MovementType: Mobility,
		MuscleGroups: []MuscleGroup{Back, CoreMuscle},
		IsSupport:    true,
		BaseReps:     8,
		Goal:         "Improve upper back rotation and reduce stiffness.",
		Instructions: []string{
			"Side-lying position, knees stacked and bent at 90°",
			"Top arm reaches over, rotate upper back to open chest",
			"Follow hand with eyes, hold, return with control",
		},
		CommonMistake:     "Knees lifting. Keep them stacked and still.",
		EasierVariant:     "Place a pillow between knees for comfort",
		HarderVariant:     "Hold each rotation for 5 seconds",
		Contraindications: []Constraint{Shoulder, LowerBack},
		DifficultyLevel:   1,
	},
}
