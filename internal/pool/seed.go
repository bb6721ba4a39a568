package pool

// DefaultPool returns the built-in starter pool so the app works before the
// user points it at their own master pool file. Covers the cardiovascular
// units: antihypertensives (lab 1) and antilipemics/anticoagulants (lab 2).
func DefaultPool() []DrugRecord {
	return []DrugRecord{
		{
			Generic:   "lisinopril",
			Brands:    AliasList{"Prinivil", "Zestril"},
			Class:     "ACE inhibitor",
			Category:  "Antihypertensive",
			Mechanism: "Inhibits conversion of angiotensin I to angiotensin II",
			Meta:      Curriculum{Lab: 1, Quiz: 1, Week: 1},
		},
		{
			Generic:   "losartan",
			Brands:    AliasList{"Cozaar"},
			Class:     "Angiotensin II receptor blocker",
			Category:  "Antihypertensive",
			Mechanism: "Blocks angiotensin II from binding to its receptor",
			Meta:      Curriculum{Lab: 1, Quiz: 1, Week: 1},
		},
		{
			Generic:   "metoprolol",
			Brands:    AliasList{"Lopressor", "Toprol-XL"},
			Class:     "Beta-1 selective blocker",
			Category:  "Antihypertensive",
			Mechanism: "Blocks beta-1 receptors in cardiac muscle",
			Meta:      Curriculum{Lab: 1, Quiz: 1, Week: 2},
		},
		{
			Generic:   "amlodipine",
			Brands:    AliasList{"Norvasc"},
			Class:     "Calcium channel blocker (dihydropyridine)",
			Category:  "Antihypertensive",
			Mechanism: "Blocks calcium channels in vascular smooth muscle",
			Meta:      Curriculum{Lab: 1, Quiz: 1, Week: 2},
		},
		{
			Generic:   "diltiazem",
			Brands:    AliasList{"Cardizem", "Cartia XT"},
			Class:     "Calcium channel blocker (non-dihydropyridine)",
			Category:  "Antihypertensive",
			Mechanism: "Blocks calcium channels in cardiac and vascular smooth muscle",
			Meta:      Curriculum{Lab: 1, Quiz: 2, Week: 3},
		},
		{
			Generic:   "hydrochlorothiazide",
			Brands:    AliasList{"Microzide"},
			Class:     "Thiazide diuretic",
			Category:  "Antihypertensive",
			Mechanism: "Inhibits Na+/Cl- reabsorption in the distal tubule",
			Meta:      Curriculum{Lab: 1, Quiz: 2, Week: 3},
		},
		{
			Generic:   "furosemide",
			Brands:    AliasList{"Lasix"},
			Class:     "Loop diuretic",
			Category:  "Antihypertensive",
			Mechanism: "Inhibits Na+/K+/Cl- reabsorption in the loop of Henle",
			Meta:      Curriculum{Lab: 1, Quiz: 2, Week: 4},
		},
		{
			Generic:   "spironolactone",
			Brands:    AliasList{"Aldactone"},
			Class:     "Aldosterone receptor antagonist",
			Category:  "Antihypertensive",
			Mechanism: "Competes with aldosterone in the distal tubule",
			Meta:      Curriculum{Lab: 1, Quiz: 2, Week: 4},
		},
		{
			Generic:   "atorvastatin",
			Brands:    AliasList{"Lipitor"},
			Class:     "HMG-CoA reductase inhibitor",
			Category:  "Antilipemic",
			Mechanism: "Inhibits the rate-limiting enzyme of cholesterol synthesis",
			Meta:      Curriculum{Lab: 2, Quiz: 1, IsNew: true},
		},
		{
			Generic:   "rosuvastatin",
			Brands:    AliasList{"Crestor"},
			Class:     "HMG-CoA reductase inhibitor",
			Category:  "Antilipemic",
			Mechanism: "Inhibits the rate-limiting enzyme of cholesterol synthesis",
			Meta:      Curriculum{Lab: 2, Quiz: 1, IsNew: true},
		},
		{
			Generic:   "gemfibrozil",
			Brands:    AliasList{"Lopid"},
			Class:     "Fibric acid derivative",
			Category:  "Antilipemic",
			Mechanism: "Activates lipoprotein lipase to clear triglycerides",
			Meta:      Curriculum{Lab: 2, Quiz: 1, IsNew: true},
		},
		{
			Generic:   "ezetimibe",
			Brands:    AliasList{"Zetia"},
			Class:     "Cholesterol absorption inhibitor",
			Category:  "Antilipemic",
			Mechanism: "Blocks intestinal absorption of dietary cholesterol",
			Meta:      Curriculum{Lab: 2, Quiz: 1, IsNew: true},
		},
		{
			Generic:   "warfarin",
			Brands:    AliasList{"Coumadin", "Jantoven"},
			Class:     "Vitamin K antagonist",
			Category:  "Anticoagulant",
			Mechanism: "Inhibits vitamin K-dependent clotting factor synthesis",
			Meta:      Curriculum{Lab: 2, Quiz: 2, IsNew: true},
		},
		{
			Generic:   "apixaban",
			Brands:    AliasList{"Eliquis"},
			Class:     "Direct factor Xa inhibitor",
			Category:  "Anticoagulant",
			Mechanism: "Directly inhibits factor Xa",
			Meta:      Curriculum{Lab: 2, Quiz: 2, IsNew: true},
		},
		{
			Generic:   "rivaroxaban",
			Brands:    AliasList{"Xarelto"},
			Class:     "Direct factor Xa inhibitor",
			Category:  "Anticoagulant",
			Mechanism: "Directly inhibits factor Xa",
			Meta:      Curriculum{Lab: 2, Quiz: 2, IsNew: true},
		},
		{
			Generic:   "amiodarone",
			Brands:    AliasList{"Pacerone"},
			Class:     "Class III antiarrhythmic",
			Category:  "Antiarrhythmic",
			Mechanism: "Blocks potassium channels, prolonging repolarization",
			Meta:      Curriculum{Lab: 2, Quiz: 3, IsNew: true},
		},
	}
}
