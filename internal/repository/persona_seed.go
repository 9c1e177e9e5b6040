package repository

import "pt-sim/internal/domain"

// SeedPersonas devuelve el set de pacientes embebido que se usa cuando no
// hay directorio de personas configurado.
func SeedPersonas() []domain.Persona {
	return []domain.Persona{
		{
			Meta: domain.PersonaMeta{PatientID: "P-0002", Version: "1"},
			Identity: domain.Identity{
				PreferredName: "Jordan",
				Pronouns:      "they/them",
				Age:           24,
				SexAtBirth:    "female",
				Language:      "English",
			},
			Condition:      "Lateral ankle sprain, right",
			ChiefComplaint: "I rolled my ankle playing soccer and it still hurts when I walk.",
			HPI: domain.HPI{
				Onset:       "five days ago",
				Mechanism:   "landing on another player's foot going for a header",
				Location:    "outside of my right ankle",
				SeverityNRS: 4,
				Aggravators: []string{"walking downhill", "uneven ground", "standing all shift"},
				Easers:      []string{"ice", "keeping it elevated", "the compression sleeve"},
				Pattern24h:  "stiff in the morning, achy by evening after being on it",
			},
			ExamScript: domain.ExamScript{
				Observation: "mild swelling around the lateral malleolus, faint bruising",
				AROM: map[string]string{
					"dorsiflexion": "limited and pinchy at end range",
					"inversion":    "painful, guarded",
				},
				SpecialTests: map[string]string{
					"anterior drawer": "mild laxity, some pain",
					"talar tilt":      "painful but stable",
				},
				Neurovascular: "intact, no numbness or tingling",
			},
			Communication: domain.CommunicationProfile{
				Tone:           "friendly, a bit impatient to get back to playing",
				Talkativeness:  "normal",
				HealthLiteracy: "moderate",
			},
			Context: domain.PatientContext{
				City:               "Columbus",
				RuralUrban:         "urban",
				SportParticipation: "recreational soccer, twice a week",
				WorkStatus:         "on my feet most of the day as a barista",
			},
			SDOH:  domain.SDOH{Transport: "reliable, I take the bus"},
			Goals: []string{"get back to soccer", "work a full shift without my ankle throbbing"},
		},
		{
			Meta: domain.PersonaMeta{PatientID: "P-0007", Version: "1"},
			Identity: domain.Identity{
				PreferredName: "Marcus",
				Pronouns:      "he/him",
				Age:           47,
				SexAtBirth:    "male",
				Language:      "English",
			},
			Condition:      "Non-specific low back pain",
			ChiefComplaint: "My lower back seized up lifting boxes at the warehouse and it hasn't let up.",
			HPI: domain.HPI{
				Onset:       "about three weeks ago",
				Mechanism:   "lifting a heavy box while twisting",
				Location:    "across my lower back, a little more on the left",
				SeverityNRS: 6,
				Aggravators: []string{"bending forward", "sitting more than an hour", "first hour of work"},
				Easers:      []string{"walking around", "heat", "lying flat for a bit"},
				Pattern24h:  "worst first thing in the morning, loosens up midday, flares again at night",
			},
			ExamScript: domain.ExamScript{
				Observation: "guarded posture, reluctant to flex forward",
				AROM: map[string]string{
					"flexion":   "fingertips to mid-thigh, painful",
					"extension": "mildly limited, uncomfortable",
				},
				SpecialTests: map[string]string{
					"slr": "negative bilaterally",
				},
				Neurovascular: "no numbness, tingling, or weakness reported",
			},
			Communication: domain.CommunicationProfile{
				Tone:           "matter-of-fact, worried about missing work",
				Talkativeness:  "normal",
				HealthLiteracy: "low",
			},
			Context: domain.PatientContext{
				City:               "Toledo",
				RuralUrban:         "urban",
				SportParticipation: "none regular",
				WorkStatus:         "on light duty, worried about restrictions",
			},
			SDOH:  domain.SDOH{Transport: "drives himself, older car"},
			Goals: []string{"get back to full duty", "pick up my kid without bracing myself"},
		},
		{
			Meta: domain.PersonaMeta{PatientID: "P-0011", Version: "1"},
			Identity: domain.Identity{
				PreferredName:     "Olena",
				Pronouns:          "she/her",
				Age:               58,
				SexAtBirth:        "female",
				Language:          "Ukrainian",
				InterpreterNeeded: true,
			},
			Condition:      "Rotator cuff related shoulder pain, left",
			ChiefComplaint: "My shoulder aches and I cannot reach the top shelf anymore.",
			HPI: domain.HPI{
				Onset:       "gradually over the last two months",
				Mechanism:   "no single injury, it crept up after I started cleaning houses again",
				Location:    "outside of my left shoulder, sometimes down the arm",
				SeverityNRS: 5,
				Aggravators: []string{"reaching overhead", "lifting the vacuum", "sleeping on that side"},
				Easers:      []string{"rest", "warm shower"},
				Pattern24h:  "wakes me at night if I roll onto it, manageable during the day",
			},
			ExamScript: domain.ExamScript{
				Observation: "no visible atrophy, guarded with overhead reach",
				AROM: map[string]string{
					"flexion":   "painful arc 80-120 degrees",
					"abduction": "limited by pain near 100 degrees",
				},
				SpecialTests: map[string]string{
					"hawkins-kennedy": "positive",
					"empty can":       "painful, mild weakness",
				},
				Neurovascular: "intact distally",
			},
			Communication: domain.CommunicationProfile{
				Tone:           "polite, reserved",
				Talkativeness:  "normal",
				HealthLiteracy: "moderate",
			},
			Context: domain.PatientContext{
				City:               "Parma",
				RuralUrban:         "suburban",
				SportParticipation: "walks daily",
				WorkStatus:         "self-employed house cleaner, cutting back hours",
			},
			SDOH:  domain.SDOH{Transport: "depends on rides from her daughter"},
			Goals: []string{"sleep through the night", "keep cleaning without my arm giving out"},
		},
	}
}
