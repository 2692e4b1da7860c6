package service

import (
	"fmt"
	"strings"

	"github.com/altosdelrio/guest-concierge/internal/core"
)

// Guest-facing copy. The property operates in Medellín, so replies are in Spanish.
const (
	replyWifiPrompt = "Por favor indícame el número de tu apartamento para darte la clave WiFi."
	replyNudge      = "¿Aún estás ahí? 😊"
	replyFallback   = "No entendí tu mensaje."
	replyLookupDown = "Lo siento, en este momento no puedo consultar la información del apartamento. Escribe *6* y te pondremos en contacto con una persona del equipo."
)

// menuReplies maps the fixed numeric menu options to their canned answers. Option 1
// (Wi-Fi) is not here: it starts the apartment-number flow instead of replying inline.
var menuReplies = map[string]string{
	"2": "Horarios: check-in desde las 3 pm y check-out hasta las 11 am.",
	"3": "Puedes pagar vía transferencia (Bancolombia, ahorros 907-000123-45) o con este enlace: https://checkout.wompi.co/l/altosdelrio",
	"4": "Servicios: early check-in, late check-out, upgrades y guardado de maletas. Escríbenos para cotizar.",
	"5": "Reglas de la casa: no fiestas, reporta cualquier daño y las salidas tarde sin aviso tienen multa.",
	"6": "Te pondremos en contacto con una persona del equipo en breve.",
}

func replyUnitNotFound(apartmentID string) string {
	return fmt.Sprintf("No encontré información para el apartamento %s. ¿Podrías verificar el número?", apartmentID)
}

// formatUnitInfo composes the successful lookup reply: a confirmation line followed by
// one line per available field. Absent fields are omitted, never printed empty.
func formatUnitInfo(apartmentID string, unit *core.UnitRecord) string {
	lines := []string{fmt.Sprintf("✅ Apartamento %s", apartmentID)}
	if unit.WifiNetwork != "" {
		lines = append(lines, "Red WiFi: "+unit.WifiNetwork)
	}
	if unit.WifiPassword != "" {
		lines = append(lines, "Clave: "+unit.WifiPassword)
	}
	if unit.Beds != "" {
		lines = append(lines, "Camas: "+unit.Beds)
	}
	if unit.Floor != "" {
		lines = append(lines, "Piso: "+unit.Floor)
	}
	if unit.Capacity != "" {
		lines = append(lines, "Capacidad: "+unit.Capacity)
	}
	if unit.Laundry != "" {
		lines = append(lines, "Lavandería: "+unit.Laundry)
	}
	return strings.Join(lines, "\n")
}
