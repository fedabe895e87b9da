package catalog

import "github.com/ytget/paper-downloader/internal/model"

// Fallback returns the built-in catalog used when the configured source
// cannot be loaded. Each call returns a fresh copy.
func Fallback() model.Catalog {
	return model.Catalog{
		model.Class10th: {
			model.MediumEnglish: {
				"Hindi": {
					"2022": {
						URL:      "papers/10th/english/Hindi/2022.pdf",
						FileName: "MP_Board_10th_Hindi_2022.pdf",
						FileSize: "1.2 MB",
						Pages:    "12",
						Quality:  "Excellent",
						Preview:  "papers/10th/english/Hindi/2022_preview.jpg",
					},
					"2021": {
						URL:      "papers/10th/english/Hindi/2021.pdf",
						FileName: "MP_Board_10th_Hindi_2021.pdf",
						FileSize: "1.1 MB",
						Pages:    "10",
						Quality:  "Good",
					},
				},
				"Science": {
					"2022": {
						URL:      "papers/10th/english/Science/2022.pdf",
						FileName: "MP_Board_10th_Science_2022.pdf",
						FileSize: "1.5 MB",
						Pages:    "15",
						Quality:  "Excellent",
					},
				},
			},
		},
		model.Class12th: {
			model.MediumEnglish: {
				"Physics": {
					"2022": {
						URL:      "papers/12th/english/Physics/2022.pdf",
						FileName: "MP_Board_12th_Physics_2022.pdf",
						FileSize: "2.1 MB",
						Pages:    "18",
						Quality:  "Excellent",
					},
				},
			},
		},
	}
}
