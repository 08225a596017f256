package entity

import (
	"fmt"
	"math/rand"

	"trek/internal/galaxy"
)

// Fixed stats of the stationary objects
const (
	AsteroidHP     = 50
	AsteroidImages = 7
	StarHP         = MaxHP
	BaseHP         = MaxHP
)

func cellTag(c galaxy.Coordinate) string {
	return fmt.Sprintf("%d%d%d%d", c.QLoc.X, c.QLoc.Y, c.RLoc.X, c.RLoc.Y)
}

// Base is a Federation star base
type Base struct {
	Machine
}

// NewBase creates a Federation base at c
func NewBase(c galaxy.Coordinate) (*Base, error) {
	obj, err := newObject("Base "+cellTag(c), "/images/bases/star_base.bmp", Federation, BaseHP, c)
	if err != nil {
		return nil, err
	}
	return &Base{Machine: newMachine(obj)}, nil
}

func (b *Base) Kind() Kind { return KindBase }

// Asteroid is a small neutral rock
type Asteroid struct {
	Object
}

// NewAsteroid creates an asteroid at c with one of the asteroid images picked by rng
func NewAsteroid(c galaxy.Coordinate, rng *rand.Rand) (*Asteroid, error) {
	n := 0
	if rng != nil {
		n = rng.Intn(AsteroidImages)
	} else {
		n = rand.Intn(AsteroidImages)
	}
	image := fmt.Sprintf("/images/space/asteroid_0%d.bmp", n+1)
	obj, err := newObject("Asteroid "+cellTag(c), image, Neutral, AsteroidHP, c)
	if err != nil {
		return nil, err
	}
	return &Asteroid{Object: obj}, nil
}

func (a *Asteroid) Kind() Kind { return KindAsteroid }

// Star is a neutral sun
type Star struct {
	Object
}

// NewStar creates a star at c
func NewStar(c galaxy.Coordinate) (*Star, error) {
	obj, err := newObject("Star "+cellTag(c), "/images/space/sun.bmp", Neutral, StarHP, c)
	if err != nil {
		return nil, err
	}
	return &Star{Object: obj}, nil
}

func (s *Star) Kind() Kind { return KindStar }
