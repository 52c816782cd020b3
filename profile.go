package supernova

// ModelID identifies a user-facing model choice. The set is closed; IDs
// that fall outside it (for example a stale persisted selection) resolve
// to the default profile rather than erroring.
type ModelID string

const (
	ModelGemini3Pro   ModelID = "gemini-3-pro"
	ModelGemini25Pro  ModelID = "gemini-2.5-pro"
	ModelGPT3         ModelID = "gpt-3"
	ModelClaude3Opus  ModelID = "claude-3-opus"
	ModelMistralLarge ModelID = "mistral-large"
)

// DefaultModel is the selection on a fresh start. It is a free profile so
// new users don't hit the paywall before sending anything.
const DefaultModel = ModelGemini25Pro

// ModelIDs lists the selectable models in picker order.
var ModelIDs = []ModelID{
	ModelGemini3Pro,
	ModelGemini25Pro,
	ModelClaude3Opus,
	ModelMistralLarge,
	ModelGPT3,
}

// Profile is the configuration bundle behind a ModelID: the concrete
// backend model, the system instruction establishing the persona, and
// whether the choice is gated behind premium. Static configuration, not
// session state.
type Profile struct {
	DisplayName       string
	BackendModel      string
	SystemInstruction string
	RequiresPremium   bool
}

// GenerationParams are the sampling parameters sent with every exchange.
type GenerationParams struct {
	Temperature float32
	TopK        float32
	TopP        float32
}

// DefaultGenerationParams returns the fixed sampling configuration used
// for all profiles.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{Temperature: 0.7, TopK: 64, TopP: 0.95}
}

const (
	backendGemini3Pro   = "gemini-3-pro-preview"
	backendGemini25Fast = "gemini-2.5-flash"
)

var profiles = map[ModelID]Profile{
	ModelGemini3Pro: {
		DisplayName:     "Supernova Ultra",
		BackendModel:    backendGemini3Pro,
		RequiresPremium: true,
		SystemInstruction: `Você é a Supernova (Edição Ultra), uma IA de elite baseada no modelo Gemini 3 Pro.

Diretrizes:
1.  **Excelência Técnica:** Forneça respostas profundas, detalhadas e tecnicamente precisas.
2.  **Raciocínio:** Utilize raciocínio passo-a-passo para problemas complexos.
3.  **Persona:** Sofisticada, moderna e proativa.
4.  **Formatação:** Use Markdown rico (tabelas, código, negrito).
5.  **Identidade:** Se perguntada, confirme que você é a versão Ultra rodando no Gemini 3 Pro.`,
	},
	ModelGemini25Pro: {
		// The "2.5 Pro" choice runs on 2.5 Flash for speed.
		DisplayName:  "Supernova Fast",
		BackendModel: backendGemini25Fast,
		SystemInstruction: `Você é a Supernova (Edição Fast), focada em velocidade e eficiência, baseada no modelo Gemini 2.5 Flash.

Diretrizes:
1.  **Velocidade:** Seja direta e concisa. Evite divagações desnecessárias.
2.  **Eficiência:** Vá direto ao ponto.
3.  **Identidade:** Você é a versão otimizada para performance.`,
	},
	ModelGPT3: {
		DisplayName:  "GPT-3 Legacy",
		BackendModel: backendGemini25Fast,
		SystemInstruction: `Você está operando em "Modo de Compatibilidade GPT-3 Legacy".

Diretrizes:
1.  **Simulação:** Aja como um assistente de IA genérico e prestativo de 2021.
2.  **Estilo:** Seja simples, robótico mas educado, e evite excesso de personalidade "cósmica".
3.  **Restrições:** Mantenha respostas mais curtas e padronizadas.
4.  **Nota:** Se perguntada, diga que está rodando em modo de compatibilidade legado.`,
	},
	ModelClaude3Opus: {
		DisplayName:     "Claude 3 Opus",
		BackendModel:    backendGemini3Pro,
		RequiresPremium: true,
		SystemInstruction: `Você está operando no modo "Claude 3 Opus (Simulado)".

Diretrizes:
1.  **Estilo de Escrita:** Adote um tom altamente articulado, nuançado e quase literário. Evite jargões robóticos comuns de IA.
2.  **Segurança e Ética:** Priorize respostas extremamente seguras, inofensivas e honestas, características marcantes do modelo simulado.
3.  **Profundidade:** Forneça explicações abrangentes e detalhadas, explorando múltiplas facetas de uma questão.
4.  **Nota:** Se perguntada, esclareça que você é a Supernova simulando o estilo e capacidades do Claude 3 Opus.`,
	},
	ModelMistralLarge: {
		DisplayName:     "Mistral Large",
		BackendModel:    backendGemini3Pro,
		RequiresPremium: true,
		SystemInstruction: `Você está operando no modo "Mistral Large (Simulado)".

Diretrizes:
1.  **Eficiência Europeia:** Seja extremamente direto, lógico e sem "fluff" (conteúdo vazio).
2.  **Foco em Código:** Demonstre alta proficiência técnica e concisão em exemplos de código.
3.  **Transparência:** Adote um tom mais técnico e "open-weight", menos conversacional e mais funcional.
4.  **Nota:** Se perguntada, esclareça que você é a Supernova simulando o estilo do Mistral Large.`,
	},
}

// ResolveProfile maps a ModelID to its Profile. Unknown IDs fail closed
// to a default profile so the engine stays usable when a persisted
// selection no longer exists.
func ResolveProfile(id ModelID) Profile {
	if p, ok := profiles[id]; ok {
		return p
	}
	return Profile{DisplayName: string(id), BackendModel: backendGemini3Pro}
}
