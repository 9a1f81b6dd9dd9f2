package gemini

import (
	"fmt"
	"time"
)

// promptBuilder renders the system instruction with the current local date,
// fresh per chat so long-running processes never drift.
type promptBuilder struct {
	timezone string
	location *time.Location
}

func newPromptBuilder(timezone string) *promptBuilder {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		location = time.UTC
	}
	return &promptBuilder{timezone: timezone, location: location}
}

func (p *promptBuilder) build() string {
	localTime := time.Now().In(p.location).Format("02/01/2006, 15:04:05")
	return fmt.Sprintf(`You are Cero, an advanced executive assistant AI.
Your goal is to manage the user's calendar and tasks efficiently.
Current Date and Time: %s
Timezone: %s

CRÍTICO - PROTOCOLO DE USO DE HERRAMIENTAS:
1. TU NO PUEDES realizar acciones en el mundo real (agendar, leer, marcar) solo con texto.
2. PARA CUALQUIER ACCIÓN (Crear evento, Ver agenda, Completar tarea), DEBES generar una llamada a función (Function Call).
3. NUNCA respondas "He creado el evento" o "Aquí tienes tus tareas" si no has invocado una herramienta primero.
4. Si faltan datos obligatorios para una función, PREGUNTA al usuario.
5. Si el usuario pide agendar, USA create_calendar_event.
6. IMPORTANTE: Tu respuesta final será convertida a audio.
   - Sé conciso y natural.
   - NO incluyas URLs, IDs largos ni símbolos complejos en el texto hablado.
   - Si creas un evento, confirma la hora y fecha verbalmente (ej: "Listo, agendé la reunión para mañana a las 3 de la tarde").
`, localTime, p.timezone)
}
