package systems

// MaxGeneratorOutput is the largest nominal output a generator can have
const MaxGeneratorOutput = 50000

// Generator produces energy every hour
type Generator struct {
	machineSystem
	capacity int
}

// NewGenerator creates a generator with the given nominal output per hour
func NewGenerator(output int) *Generator {
	g := &Generator{machineSystem: newMachineSystem()}
	g.SetCapacity(output)
	return g
}

func (g *Generator) Kind() Kind    { return KindGenerator }
func (g *Generator) Name() string  { return "Generator" }
func (g *Generator) Capacity() int { return g.capacity }

// SetCapacity clamps the nominal output to [1, MaxGeneratorOutput]
func (g *Generator) SetCapacity(output int) {
	g.capacity = clampInt(output, 1, MaxGeneratorOutput)
}

// Output is the hourly output after damage, floor(capacity x repair)
func (g *Generator) Output() int {
	return int(float64(g.capacity) * g.Repair())
}
