package policies

import (
	"sync"

	"meet-flagcheck/internal/core"
	"meet-flagcheck/internal/types"
)

const (
	FlagTranscriptionEnabled       = "transcription.enabled"
	FlagInviteJigasi               = "transcription.inviteJigasiOnBackendTranscribing"
	FlagAutoTranscribeOnRecord     = "transcription.autoTranscribeOnRecord"
	FlagAutoCaptionOnTranscribe    = "transcription.autoCaptionOnTranscribe"
	FlagUseAppLanguage             = "transcription.useAppLanguage"
	FlagPreferredLanguage          = "transcription.preferredLanguage"
	FlagRecordingEnabled           = "recording.enabled"
	FlagFileRecordingsEnabled      = "fileRecordingsEnabled"
	FlagFileRecordingsSharing      = "fileRecordingsServiceSharingEnabled"
	FlagLocalRecordingEnabled      = "localRecording.enabled"
	FlagLocalRecordingNotifyAll    = "localRecording.notifyAllParticipants"
	MultitrackPresetSource         = "preset:multitrack"
	RuleRecordingNeedsTranscribe   = "recording-requires-transcription"
	RuleFileRecordingsNeedTranscr  = "file-recordings-require-transcription"
	RuleFileRecordingsNeedRecord   = "file-recordings-require-recording"
	RuleAutoTranscribeNeedsRecord  = "auto-transcribe-requires-recording"
	RuleAutoTranscribeNeedsTranscr = "auto-transcribe-requires-transcription"
	RuleMultitrackExcludesJigasi   = "multitrack-excludes-jigasi"
	RuleServerExcludesLocal        = "server-recording-excludes-local-recording"
	RuleAutoCaptionNeedsTranscr    = "auto-caption-requires-transcription"
	RuleFixedLanguageNeedsValue    = "fixed-language-requires-preferred-language"
	RuleSharingNeedsFileRecordings = "file-sharing-requires-file-recordings"
)

// MultitrackRuleSet declares the flags of the server-side multitrack
// recording pipeline and the rules tying it to the transcription
// feature. The multitrack recorder piggybacks on transcription, so file
// recording without transcription silently records nothing.
func MultitrackRuleSet() types.RuleSetFile {
	return types.RuleSetFile{
		SchemaVersion: core.RuleSetSchemaVersion,
		Flags: []types.FlagSpecFile{
			{Path: FlagTranscriptionEnabled, Type: types.FlagTypeBool, Default: false,
				Description: "Transcription UI and backend; the multitrack recorder runs on top of it"},
			{Path: FlagInviteJigasi, Type: types.FlagTypeBool, Default: true,
				Description: "Invite Jigasi when backend transcription starts"},
			{Path: FlagAutoTranscribeOnRecord, Type: types.FlagTypeBool, Default: false,
				Description: "Start transcription automatically when a recording starts"},
			{Path: FlagAutoCaptionOnTranscribe, Type: types.FlagTypeBool, Default: false,
				Description: "Show captions automatically once transcription runs"},
			{Path: FlagUseAppLanguage, Type: types.FlagTypeBool, Default: true,
				Description: "Transcribe in the application UI language"},
			{Path: FlagPreferredLanguage, Type: types.FlagTypeString, Default: "en-US",
				Description: "Transcription language when the app language is not used"},
			{Path: FlagRecordingEnabled, Type: types.FlagTypeBool, Default: false,
				Description: "Recording UI"},
			{Path: FlagFileRecordingsEnabled, Type: types.FlagTypeBool, Default: false,
				Description: "Server-side file recording; triggers the transcription infrastructure"},
			{Path: FlagFileRecordingsSharing, Type: types.FlagTypeBool, Default: false,
				Description: "Share links to finished file recordings"},
			{Path: FlagLocalRecordingEnabled, Type: types.FlagTypeBool, Default: true,
				Description: "Record in the participant's browser instead of on the server"},
			{Path: FlagLocalRecordingNotifyAll, Type: types.FlagTypeBool, Default: false,
				Description: "Notify all participants when a local recording starts"},
		},
		Rules: []types.RuleSpecFile{
			requireBool(RuleRecordingNeedsTranscribe, FlagRecordingEnabled, FlagTranscriptionEnabled, true, types.SeverityError,
				"the recording pipeline is driven by the transcription feature"),
			requireBool(RuleFileRecordingsNeedTranscr, FlagFileRecordingsEnabled, FlagTranscriptionEnabled, true, types.SeverityError,
				"file recordings are produced by the multitrack recorder, which needs transcription"),
			requireBool(RuleFileRecordingsNeedRecord, FlagFileRecordingsEnabled, FlagRecordingEnabled, true, types.SeverityError,
				"file recordings cannot be started without the recording UI"),
			requireBool(RuleAutoTranscribeNeedsRecord, FlagAutoTranscribeOnRecord, FlagRecordingEnabled, true, types.SeverityError,
				"auto-transcribe-on-record never fires when recording is disabled"),
			requireBool(RuleAutoTranscribeNeedsTranscr, FlagAutoTranscribeOnRecord, FlagTranscriptionEnabled, true, types.SeverityWarning,
				"auto-transcribe-on-record has no effect while transcription is disabled"),
			requireBool(RuleMultitrackExcludesJigasi, FlagFileRecordingsEnabled, FlagInviteJigasi, false, types.SeverityWarning,
				"backend transcription would invite Jigasi instead of using the multitrack recorder"),
			requireBool(RuleServerExcludesLocal, FlagFileRecordingsEnabled, FlagLocalRecordingEnabled, false, types.SeverityWarning,
				"local recording competes with server-side multitrack recording"),
			requireBool(RuleAutoCaptionNeedsTranscr, FlagAutoCaptionOnTranscribe, FlagTranscriptionEnabled, true, types.SeverityWarning,
				"captions are only produced while transcription is enabled"),
			{
				ID:      RuleFixedLanguageNeedsValue,
				Subject: FlagUseAppLanguage,
				When:    types.PredicateFile{Op: types.PredicateOpEq, Value: false},
				Requires: []types.RequirementFile{{
					Flag:      FlagPreferredLanguage,
					Predicate: types.PredicateFile{Op: types.PredicateOpSet},
				}},
				Severity:    types.SeverityError,
				Description: "with the app language disabled the transcriber needs an explicit language",
			},
			requireBool(RuleSharingNeedsFileRecordings, FlagFileRecordingsSharing, FlagFileRecordingsEnabled, true, types.SeverityWarning,
				"there is nothing to share without file recordings"),
		},
	}
}

// MultitrackPreset is the overlay that turns on server-side multitrack
// recording on a stock deployment.
func MultitrackPreset() types.Overlay {
	return types.Overlay{
		Source: MultitrackPresetSource,
		Values: map[string]any{
			FlagTranscriptionEnabled:   true,
			FlagInviteJigasi:           false,
			FlagAutoTranscribeOnRecord: true,
			FlagRecordingEnabled:       true,
			FlagFileRecordingsEnabled:  true,
			FlagLocalRecordingEnabled:  false,
		},
	}
}

var multitrackRegistry = sync.OnceValues(func() (*core.Registry, error) {
	return core.Compile(MultitrackRuleSet())
})

// MultitrackRegistry returns the process-wide registry for the built-in
// rule set. It is compiled once; callers share the read-only result.
func MultitrackRegistry() (*core.Registry, error) {
	return multitrackRegistry()
}

func requireBool(id string, subject string, target string, want bool, severity types.Severity, description string) types.RuleSpecFile {
	return types.RuleSpecFile{
		ID:      id,
		Subject: subject,
		When:    types.PredicateFile{Op: types.PredicateOpEq, Value: true},
		Requires: []types.RequirementFile{{
			Flag:      target,
			Predicate: types.PredicateFile{Op: types.PredicateOpEq, Value: want},
		}},
		Severity:    severity,
		Description: description,
	}
}
