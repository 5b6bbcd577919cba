package workflows

import (
	"audio-briefing/src/core/domain"
)

// StepConfig defines a single step of the questionnaire.
// A step has either a GoTo for linear flow or a Decision for conditional branching.
type StepConfig struct {
	Fields   []domain.Field   `json:"fields,omitempty"`
	Gate     domain.Gate      `json:"gate"`
	GoTo     domain.StepID    `json:"go_to,omitempty"`    // Next step for simple linear flow
	Decision *domain.Decision `json:"decision,omitempty"` // Conditional branching on answers
	Submit   bool             `json:"submit,omitempty"`   // Advancing triggers the submission gateway
}

// Definition is the whole step graph with its entry and final data step
type Definition struct {
	StartStep domain.StepID                `json:"start_step"`
	FinalStep domain.StepID                `json:"final_step"`
	Steps     map[domain.StepID]StepConfig `json:"steps"`
	Defaults  map[domain.FieldID]string    `json:"defaults,omitempty"` // initial answer store content
}

func single(id domain.FieldID, options ...string) domain.Field {
	return domain.Field{ID: id, Kind: domain.KindSingle, Options: options, Required: true}
}

func multi(id domain.FieldID, options ...string) domain.Field {
	return domain.Field{ID: id, Kind: domain.KindMulti, Options: options}
}

func input(id domain.FieldID, kind domain.FieldKind, required bool) domain.Field {
	return domain.Field{ID: id, Kind: kind, Required: required}
}

func linear(next domain.StepID, fields ...domain.Field) StepConfig {
	return StepConfig{Fields: fields, Gate: domain.GateRequired, GoTo: next}
}

func match(field domain.Field, outcomes map[string]domain.StepID, otherwise domain.StepID) StepConfig {
	return StepConfig{
		Fields: []domain.Field{field},
		Gate:   domain.GateRequired,
		Decision: &domain.Decision{
			Kind:      domain.DecisionMatch,
			Field:     field.ID,
			Outcomes:  outcomes,
			Otherwise: otherwise,
		},
	}
}

// BuildBriefingDefinition builds the briefing step graph
func BuildBriefingDefinition() Definition {
	steps := map[domain.StepID]StepConfig{
		domain.StepService: match(
			single(domain.FieldService, domain.ServiceLive, domain.ServiceStudio, domain.ServicePost, domain.ServiceAdvice, domain.ServiceOther),
			map[string]domain.StepID{
				domain.ServiceLive:   domain.StepLiveType,
				domain.ServiceStudio: domain.StepStudioType,
				domain.ServicePost:   domain.StepPostType,
				domain.ServiceAdvice: domain.StepAdviceWho,
				domain.ServiceOther:  domain.StepOtherDescription,
			},
			domain.StepNone,
		),

		// Live sound
		domain.StepLiveType: match(
			single(domain.FieldLiveType, "organize", "hire"),
			map[string]domain.StepID{
				"hire":     domain.StepHireRole,
				"organize": domain.StepEventType,
			},
			domain.StepNone,
		),
		domain.StepHireRole: linear(domain.StepHireDetails,
			single(domain.FieldHireRole, "sound-engineer", "stagehand", "system-design", "mixing-mastering", "other")),
		domain.StepHireDetails: linear(domain.StepContact,
			input(domain.FieldHireDetails, domain.KindTextarea, true)),
		domain.StepEventType: match(
			single(domain.FieldEventType, "concert-festival", "corporate", "private", "other"),
			map[string]domain.StepID{
				"concert-festival": domain.StepPerformers,
			},
			domain.StepMusicCheck,
		),
		domain.StepMusicCheck: match(
			single(domain.FieldLiveMusic, "yes", "no"),
			map[string]domain.StepID{
				"yes": domain.StepPerformers,
				"no":  domain.StepLocationEquipment,
			},
			domain.StepNone,
		),
		domain.StepPerformers: match(
			single(domain.FieldPerformers, "solo-dj", "band-small", "band-large", "multiple-acts"),
			map[string]domain.StepID{
				"band-small": domain.StepInstruments,
				"band-large": domain.StepInstruments,
			},
			domain.StepLocationEquipment,
		),
		domain.StepInstruments: {
			Fields: []domain.Field{multi(domain.FieldInstruments, "drums", "bass", "guitar-keys", "vocals", "brass", "other")},
			Gate:   domain.GateNone,
			GoTo:   domain.StepLocationEquipment,
		},
		domain.StepLocationEquipment: {
			Fields: []domain.Field{multi(domain.FieldEquipment, "pa-system", "monitors", "backline", "stage", "unknown", "nothing")},
			Gate:   domain.GateNone,
			Decision: &domain.Decision{
				Kind:         domain.DecisionAnyFlag,
				Field:        domain.FieldEquipment,
				Flags:        []string{"unknown", "nothing"},
				Satisfied:    domain.StepLocationName,
				NotSatisfied: domain.StepPracticalDetails,
			},
		},
		domain.StepLocationName: linear(domain.StepPracticalDetails,
			input(domain.FieldLocationName, domain.KindText, true)),
		domain.StepPracticalDetails: {
			Fields: []domain.Field{
				input(domain.FieldEventDate, domain.KindDate, false),
				input(domain.FieldEventLocation, domain.KindText, false),
				input(domain.FieldExpectedVisitors, domain.KindNumber, false),
				input(domain.FieldEventDetails, domain.KindTextarea, false),
			},
			Gate: domain.GateNone,
			GoTo: domain.StepContact,
		},

		// Studio and post-production
		domain.StepStudioType: linear(domain.StepStudioDetails,
			single(domain.FieldStudioType, "podcast", "live-band", "voice-over", "instruments", "other")),
		domain.StepStudioDetails: linear(domain.StepContact,
			input(domain.FieldStudioDetails, domain.KindTextarea, true)),
		domain.StepPostType: linear(domain.StepPostDetails,
			single(domain.FieldPostType, "mix-master", "audio-for-video", "podcast-editing", "other")),
		domain.StepPostDetails: linear(domain.StepContact,
			input(domain.FieldPostDetails, domain.KindTextarea, true)),

		// Advice
		domain.StepAdviceWho: linear(domain.StepAdviceGoal,
			single(domain.FieldAdviceWho, "private", "band", "venue", "company", "event-organizer")),
		domain.StepAdviceGoal: match(
			single(domain.FieldAdviceGoal, "event", "improve", "purchase", "other"),
			map[string]domain.StepID{
				"event":    domain.StepEventType,
				"improve":  domain.StepAdviceRoom,
				"purchase": domain.StepAdviceUsage,
				"other":    domain.StepOtherDescription,
			},
			domain.StepNone,
		),
		domain.StepAdviceRoom: linear(domain.StepAdviceAim,
			single(domain.FieldAdviceRoom, "hospitality", "office", "studio", "home", "other")),
		domain.StepAdviceAim: linear(domain.StepAdviceMethod,
			single(domain.FieldAdviceAim, "speech", "reverb", "isolation", "experience", "other"),
			input(domain.FieldAdviceAimDetails, domain.KindTextarea, false)),
		domain.StepAdviceMethod: linear(domain.StepContact,
			single(domain.FieldAdviceMethod, "site-measurement", "report", "system-design", "sparring")),
		domain.StepAdviceUsage: linear(domain.StepPurchaseDetails,
			single(domain.FieldAdviceUsage, "live", "studio", "content", "other")),
		domain.StepPurchaseDetails: linear(domain.StepPurchaseType,
			input(domain.FieldPurchaseDetails, domain.KindTextarea, true)),
		domain.StepPurchaseType: linear(domain.StepContact,
			single(domain.FieldPurchaseType, "buy", "long-term-rent", "undecided")),

		domain.StepOtherDescription: linear(domain.StepContact,
			input(domain.FieldOtherDescription, domain.KindTextarea, true)),

		domain.StepContact: {
			Fields: []domain.Field{
				input(domain.FieldContactName, domain.KindText, true),
				input(domain.FieldContactEmail, domain.KindEmail, true),
				input(domain.FieldContactPhone, domain.KindPhone, true),
				single(domain.FieldContactPref, domain.ContactPrefEmail, domain.ContactPrefPhone, domain.ContactPrefWhatsApp),
			},
			Gate:   domain.GateContact,
			Submit: true,
		},

		// Terminal steps; leaving them is only possible through restart or retry
		domain.StepSuccess: {Gate: domain.GateNone},
		domain.StepError:   {Gate: domain.GateNone},
	}

	return Definition{
		StartStep: domain.StepService,
		FinalStep: domain.StepContact,
		Steps:     steps,
		Defaults: map[domain.FieldID]string{
			domain.FieldContactPref: domain.ContactPrefEmail,
		},
	}
}
