package ruta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTramo(t *testing.T) {
	tests := []struct {
		name string
		from TramoEstado
		to   TramoEstado
		ok   bool
	}{
		{"pendiente to asignado", TramoPendiente, TramoAsignado, true},
		{"asignado to iniciado", TramoAsignado, TramoIniciado, true},
		{"iniciado to finalizado", TramoIniciado, TramoFinalizado, true},
		{"no skip pendiente to iniciado", TramoPendiente, TramoIniciado, false},
		{"no skip asignado to finalizado", TramoAsignado, TramoFinalizado, false},
		{"no backward", TramoFinalizado, TramoIniciado, false},
		{"terminal state", TramoFinalizado, TramoFinalizado, false},
		{"no self loop", TramoAsignado, TramoAsignado, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, CanTransitionTramo(tt.from, tt.to))
		})
	}
}

func TestTerminaEnDeposito(t *testing.T) {
	assert.True(t, Tramo{Tipo: TipoOrigenDeposito}.TerminaEnDeposito())
	assert.True(t, Tramo{Tipo: TipoDepositoDeposito}.TerminaEnDeposito())
	assert.False(t, Tramo{Tipo: TipoOrigenDestino}.TerminaEnDeposito())
	assert.False(t, Tramo{Tipo: TipoDepositoDestino}.TerminaEnDeposito())
}
