package clock

import "time"

// Timer é um prazo cooperativo: não dispara sozinho, quem chama Due
// decide quando o tempo passou. Repetitivo ou de disparo único.
type Timer struct {
	period time.Duration
	repeat bool
	armed  bool
	next   time.Time
}

// NewRepeating cria um timer armado que vence a cada period a partir de start
func NewRepeating(start time.Time, period time.Duration) *Timer {
	return &Timer{period: period, repeat: true, armed: period > 0, next: start.Add(period)}
}

// NewOneShot cria um timer desarmado; use Arm para iniciar a contagem
func NewOneShot(period time.Duration) *Timer {
	return &Timer{period: period}
}

// Arm (re)inicia a contagem a partir de now, substituindo qualquer prazo pendente
func (t *Timer) Arm(now time.Time) {
	t.next = now.Add(t.period)
	t.armed = true
}

func (t *Timer) Stop() { t.armed = false }

func (t *Timer) Armed() bool { return t.armed }

func (t *Timer) Next() time.Time { return t.next }

// Due retorna quantas vezes o timer venceu até now e avança o próximo prazo.
// Um timer único vence no máximo uma vez e desarma.
func (t *Timer) Due(now time.Time) int {
	if !t.armed || now.Before(t.next) {
		return 0
	}
	if !t.repeat {
		t.armed = false
		return 1
	}
	n := int(now.Sub(t.next)/t.period) + 1
	t.next = t.next.Add(time.Duration(n) * t.period)
	return n
}
