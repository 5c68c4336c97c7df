// Package i18n provides internationalization support for the pool flow service.
// It handles translation of user-facing messages and error messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	// defaultTranslator is the singleton translator instance.
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale if the locale is not found.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	localeMessages, ok := t.messages[locale]
	if !ok {
		localeMessages = t.messages[DefaultLocale]
	}

	msg, ok := localeMessages[key]
	if !ok {
		// Fallback to default locale
		if defaultMessages := t.messages[DefaultLocale]; defaultMessages != nil {
			if fallbackMsg, exists := defaultMessages[key]; exists {
				return fallbackMsg
			}
		}
		return key
	}

	return msg
}

// GetLocale extracts the locale from the gin context.
// Checks Accept-Language header and falls back to DefaultLocale.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	// Parse Accept-Language header (e.g., "en-US,en;q=0.9,pt;q=0.8")
	parts := strings.Split(acceptLang, ",")
	if len(parts) > 0 {
		lang := strings.TrimSpace(strings.Split(parts[0], ";")[0])
		// Extract base language (e.g., "en" from "en-US")
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		// Normalize to lowercase
		lang = strings.ToLower(lang)
		// Validate it's a supported locale
		if _, ok := getDefaultMessages()[lang]; ok {
			return lang
		}
	}

	return DefaultLocale
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			// Error messages
			"error.invalid_request":      "Invalid request",
			"error.invalid_request_body": "Invalid request body",
			"error.internal_error":       "An unexpected error occurred",
			"error.unauthorized":         "Unauthorized",
			"error.api_key_required":     "API key is required",
			"error.invalid_api_key":      "Invalid API key",
			"error.forbidden":            "Forbidden",
			"error.not_found":            "Not found",
			"error.rate_limit_exceeded":  "Too many requests, please try again later",
			"error.conflict":             "Conflict",
			"error.invalid_token":        "Invalid or expired token",
			"error.token_required":       "Authentication token is required",
			"error.timeout":              "The request took too long to complete",
			"error.service_unavailable":  "Service temporarily unavailable",

			"error.calculation.invalid_zone_input":   "Zone values must be finite and not negative",
			"error.calculation.zero_turnover":        "Turnover minutes must be greater than zero",
			"error.calculation.empty_mandatory_zone": "A mandatory zone must have an area and a depth",
			"error.calculation.invalid_constants":    "Constants must be finite and not negative",
			"error.calculation.non_finite_result":    "The zone values are too large to produce a finite flow rate",

			"error.validation.unit_count":     "unit_count: must not be negative",
			"error.validation.too_many_zones": "zones: too many zones in one calculation",
			"error.validation.negative_value": "Values must be finite and not negative",

			"error.run_not_found":             "Calculation run not found or expired",
			"error.export.unsupported_format": "Unsupported export format, use csv, xlsx or json",
			"error.export.failed":             "The export could not be generated",
			"error.constants.conflict":        "The constants profile was changed concurrently, please retry",

			// Success messages
			"success.flow_calculated":   "Flow calculation completed successfully",
			"success.constants_updated": "Constants profile updated",
		},
		"pt": {
			// Error messages
			"error.invalid_request":      "Requisição inválida",
			"error.invalid_request_body": "Corpo da requisição inválido",
			"error.internal_error":       "Ocorreu um erro inesperado",
			"error.unauthorized":         "Não autorizado",
			"error.api_key_required":     "Chave de API é obrigatória",
			"error.invalid_api_key":      "Chave de API inválida",
			"error.forbidden":            "Proibido",
			"error.not_found":            "Não encontrado",
			"error.rate_limit_exceeded":  "Muitas requisições, tente novamente mais tarde",
			"error.conflict":             "Conflito",
			"error.invalid_token":        "Token inválido ou expirado",
			"error.token_required":       "Token de autenticação é obrigatório",
			"error.timeout":              "A requisição demorou demais para ser concluída",
			"error.service_unavailable":  "Serviço temporariamente indisponível",

			"error.calculation.invalid_zone_input":   "Os valores da zona devem ser finitos e não negativos",
			"error.calculation.zero_turnover":        "O tempo de renovação deve ser maior que zero",
			"error.calculation.empty_mandatory_zone": "Uma zona obrigatória deve ter área e profundidade",
			"error.calculation.invalid_constants":    "As constantes devem ser finitas e não negativas",
			"error.calculation.non_finite_result":    "Os valores da zona são grandes demais para gerar uma vazão finita",

			"error.validation.unit_count":     "unit_count: não pode ser negativo",
			"error.validation.too_many_zones": "zones: muitas zonas em um único cálculo",
			"error.validation.negative_value": "Os valores devem ser finitos e não negativos",

			"error.run_not_found":             "Cálculo não encontrado ou expirado",
			"error.export.unsupported_format": "Formato de exportação não suportado, use csv, xlsx ou json",
			"error.export.failed":             "Não foi possível gerar a exportação",
			"error.constants.conflict":        "O perfil de constantes foi alterado simultaneamente, tente novamente",

			// Success messages
			"success.flow_calculated":   "Cálculo de vazão concluído com sucesso",
			"success.constants_updated": "Perfil de constantes atualizado",
		},
		"nl": {
			// Error messages
			"error.invalid_request":      "Ongeldig verzoek",
			"error.invalid_request_body": "Ongeldige aanvraag body",
			"error.internal_error":       "Er is een onverwachte fout opgetreden",
			"error.unauthorized":         "Niet geautoriseerd",
			"error.api_key_required":     "API-sleutel is vereist",
			"error.invalid_api_key":      "Ongeldige API-sleutel",
			"error.forbidden":            "Verboden",
			"error.not_found":            "Niet gevonden",
			"error.rate_limit_exceeded":  "Te veel verzoeken, probeer het later opnieuw",
			"error.conflict":             "Conflict",
			"error.invalid_token":        "Ongeldig of verlopen token",
			"error.token_required":       "Authenticatietoken is vereist",
			"error.timeout":              "Het verzoek duurde te lang",
			"error.service_unavailable":  "Service tijdelijk niet beschikbaar",

			"error.calculation.invalid_zone_input":   "Zonewaarden moeten eindig en niet negatief zijn",
			"error.calculation.zero_turnover":        "De omlooptijd moet groter zijn dan nul",
			"error.calculation.empty_mandatory_zone": "Een verplichte zone moet een oppervlakte en diepte hebben",
			"error.calculation.invalid_constants":    "Constanten moeten eindig en niet negatief zijn",
			"error.calculation.non_finite_result":    "De zonewaarden zijn te groot voor een eindig debiet",

			"error.validation.unit_count":     "unit_count: mag niet negatief zijn",
			"error.validation.too_many_zones": "zones: te veel zones in één berekening",
			"error.validation.negative_value": "Waarden moeten eindig en niet negatief zijn",

			"error.run_not_found":             "Berekening niet gevonden of verlopen",
			"error.export.unsupported_format": "Niet-ondersteund exportformaat, gebruik csv, xlsx of json",
			"error.export.failed":             "De export kon niet worden gegenereerd",
			"error.constants.conflict":        "Het constantenprofiel is gelijktijdig gewijzigd, probeer het opnieuw",

			// Success messages
			"success.flow_calculated":   "Debietberekening succesvol voltooid",
			"success.constants_updated": "Constantenprofiel bijgewerkt",
		},
	}
}
