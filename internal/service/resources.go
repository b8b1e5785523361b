package service

import "sereno-backend/internal/model"

// Directory returns the static crisis-resource listing. Reference data,
// no state behind it.
func Directory() model.ResourceDirectory {
	return model.ResourceDirectory{
		EmergencyContacts: []model.EmergencyContact{
			{
				Name:      "National Suicide Prevention Lifeline",
				Phone:     "1-800-273-8255",
				Available: "24/7",
			},
			{
				Name:      "Crisis Text Line",
				Phone:     "Text HOME to 741741",
				Available: "24/7",
			},
		},
		Organizations: []model.Organization{
			{
				Name:     "National Alliance on Mental Illness (NAMI)",
				Website:  "https://www.nami.org",
				Helpline: "1-800-950-6264",
			},
			{
				Name:     "Mental Health America",
				Website:  "https://www.mhanational.org",
				Helpline: "1-800-273-8255",
			},
		},
		SelfHelpResources: []model.SelfHelpResource{
			{
				Name: "Mindfulness Exercises",
				Type: "Meditation",
				Link: "https://www.mindful.org/meditation/mindfulness-getting-started/",
			},
			{
				Name: "Anxiety Coping Strategies",
				Type: "Self-help",
				Link: "https://www.anxietycanada.com/articles/anxiety-strategies-to-help-you-cope/",
			},
		},
	}
}
