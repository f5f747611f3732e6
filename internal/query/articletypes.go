// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

// RecognizedArticleTypes is the allow-list of PubMed publication types a
// task may filter by.
var RecognizedArticleTypes = []string{
	"Adaptive Clinical Trial",
	"Address",
	"Autobiography",
	"Bibliography",
	"Biography",
	"Books and Documents",
	"Case Reports",
	"Classical Article",
	"Clinical Conference",
	"Clinical Study",
	"Clinical Trial",
	"Clinical Trial Protocol",
	"Clinical Trial, Phase I",
	"Clinical Trial, Phase II",
	"Clinical Trial, Phase III",
	"Clinical Trial, Phase IV",
	"Clinical Trial, Veterinary",
	"Collected Work",
	"Comment",
	"Comparative Study",
	"Congress",
	"Consensus Development Conference",
	"Consensus Development Conference, NIH",
	"Controlled Clinical Trial",
	"Corrected and Republished Article",
	"Dataset",
	"Dictionary",
	"Directory",
	"Duplicate Publication",
	"Editorial",
	"Electronic Supplementary Materials",
	"English Abstract",
	"Equivalence Trial",
	"Evaluation Study",
	"Expression of Concern",
	"Festschrift",
	"Government Publication",
	"Guideline",
	"Historical Article",
	"Interactive Tutorial",
	"Interview",
	"Introductory Journal Article",
	"Lecture",
	"Legal Case",
	"Legislation",
	"Letter",
	"Meta-Analysis",
	"Multicenter Study",
	"News",
	"Newspaper Article",
	"Observational Study",
	"Observational Study, Veterinary",
	"Overall",
	"Patient Education Handout",
	"Periodical Index",
	"Personal Narrative",
	"Portrait",
	"Practice Guideline",
	"Pragmatic Clinical Trial",
	"Preprint",
	"Published Erratum",
	"Randomized Controlled Trial",
	"Randomized Controlled Trial, Veterinary",
	"Research Support, American Recovery and Reinvestment Act",
	"Research Support, N.I.H., Extramural",
	"Research Support, N.I.H., Intramural",
	"Research Support, Non-U.S. Gov't",
	"Research Support, U.S. Gov't, Non-P.H.S.",
	"Research Support, U.S. Gov't, P.H.S.",
	"Research Support, U.S. Gov't",
	"Retracted Publication",
	"Retraction of Publication",
	"Review",
	"Scientific Integrity Review",
	"Systematic Review",
	"Technical Report",
	"Twin Study",
	"Validation Study",
	"Video-Audio Media",
	"Webcast",
}

var recognizedTypeSet = func() map[string]bool {
	m := make(map[string]bool, len(RecognizedArticleTypes))
	for _, t := range RecognizedArticleTypes {
		m[t] = true
	}
	return m
}()

// IsRecognizedArticleType reports whether t is on the allow-list.
func IsRecognizedArticleType(t string) bool {
	return recognizedTypeSet[t]
}

// FilterArticleTypes splits requested types into recognized and
// unrecognized, preserving order.
func FilterArticleTypes(requested []string) (recognized, unrecognized []string) {
	for _, t := range requested {
		if IsRecognizedArticleType(t) {
			recognized = append(recognized, t)
		} else {
			unrecognized = append(unrecognized, t)
		}
	}
	return recognized, unrecognized
}
