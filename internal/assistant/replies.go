package assistant

// Fixed speakable replies. Every failure path on the voice route resolves
// to one of these so the platform always has something to say; the reply
// deliberately loses the failure detail, the logs keep it.
const (
	ReplyNoText         = "No te entendí, ¿puedes repetir?"
	ReplySignIn         = "Por favor, inicia sesión en la web para continuar."
	ReplyStillThinking  = "Estoy tardando un poco más de lo normal, ¿puedes repetir?"
	ReplyModelError     = "Lo siento, hubo un error al conectar con mi cerebro."
	ReplySeriousTrouble = "Lo siento, estoy teniendo problemas técnicos serios en este momento."
	ReplyNoCandidates   = "Lo siento, no pude procesar tu solicitud."
	ReplyProblem        = "Lo siento, tuve un problema."
	ReplyTechnicalError = "Ocurrió un error técnico."
	ReplyUnknownAction  = "Acción no reconocida."
)
