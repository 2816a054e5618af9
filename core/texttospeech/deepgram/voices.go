package deepgram

type deepgramVoice string

const (
	VoiceAuraAsteria  deepgramVoice = "aura-2-asteria-en"
	VoiceAuraThalia   deepgramVoice = "aura-2-thalia-en"
	VoiceAuraApollo   deepgramVoice = "aura-2-apollo-en"
	VoiceAuraOrion    deepgramVoice = "aura-2-orion-en"
	VoiceAuraEstrella deepgramVoice = "aura-2-estrella-es"
	VoiceAuraCeleste  deepgramVoice = "aura-2-celeste-es"

	DefaultVoice = VoiceAuraAsteria
)

// GetAvailableVoices lists the speak models the client accepts.
func GetAvailableVoices() []deepgramVoice {
	return []deepgramVoice{
		VoiceAuraAsteria,
		VoiceAuraThalia,
		VoiceAuraApollo,
		VoiceAuraOrion,
		VoiceAuraEstrella,
		VoiceAuraCeleste,
	}
}
