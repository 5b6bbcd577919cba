package domain

// StepID identifies one screen of the briefing questionnaire
type StepID string

func (s StepID) String() string {
	return string(s)
}

// StepNone is returned when no transition is defined for the current answers
const StepNone StepID = ""

const (
	StepService           StepID = "service"
	StepLiveType          StepID = "live-type"
	StepHireRole          StepID = "hire-role"
	StepHireDetails       StepID = "hire-details"
	StepEventType         StepID = "event-type"
	StepMusicCheck        StepID = "music-check"
	StepPerformers        StepID = "performers"
	StepInstruments       StepID = "instruments"
	StepLocationEquipment StepID = "location-equipment"
	StepLocationName      StepID = "location-name"
	StepPracticalDetails  StepID = "practical-details"
	StepStudioType        StepID = "studio-type"
	StepStudioDetails     StepID = "studio-details"
	StepPostType          StepID = "post-type"
	StepPostDetails       StepID = "post-details"
	StepAdviceWho         StepID = "advice-who"
	StepAdviceGoal        StepID = "advice-goal"
	StepAdviceRoom        StepID = "advice-room"
	StepAdviceAim         StepID = "advice-aim"
	StepAdviceMethod      StepID = "advice-method"
	StepAdviceUsage       StepID = "advice-usage"
	StepPurchaseDetails   StepID = "purchase-details"
	StepPurchaseType      StepID = "purchase-type"
	StepOtherDescription  StepID = "other-description"
	StepContact           StepID = "contact"
	StepSuccess           StepID = "success"
	StepError             StepID = "error"
)

var allSteps = []StepID{
	StepService,
	StepLiveType, StepHireRole, StepHireDetails,
	StepEventType, StepMusicCheck, StepPerformers, StepInstruments,
	StepLocationEquipment, StepLocationName, StepPracticalDetails,
	StepStudioType, StepStudioDetails,
	StepPostType, StepPostDetails,
	StepAdviceWho, StepAdviceGoal, StepAdviceRoom, StepAdviceAim, StepAdviceMethod,
	StepAdviceUsage, StepPurchaseDetails, StepPurchaseType,
	StepOtherDescription,
	StepContact, StepSuccess, StepError,
}

// AllSteps returns every step identifier in questionnaire order
func AllSteps() []StepID {
	out := make([]StepID, len(allSteps))
	copy(out, allSteps)
	return out
}

// IsTerminal reports whether the step is an end state of a submission
func (s StepID) IsTerminal() bool {
	return s == StepSuccess || s == StepError
}

// ParseStepID returns the step for a tag, or false when the tag is unknown
func ParseStepID(tag string) (StepID, bool) {
	for _, s := range allSteps {
		if string(s) == tag {
			return s, true
		}
	}
	return StepNone, false
}
