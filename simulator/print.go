package simulator

import (
	"fmt"
	"time"
)

func (s *Simulator) PrintInitialization(dt, hMax float64) {
	fmt.Printf("Solving [%s] until finaltime = %8.5f\n", s.name(), s.Params.EndTime)
	fmt.Printf("Time step = %11.4e, maximum height = %11.4e\n", dt, hMax)
	fmt.Printf("   frame    iter        time      volume\n")
}

func (s *Simulator) PrintUpdate(frame, steps int, t, volume float64) {
	fmt.Printf("%8d%8d%12.5f%12.4e\n", frame, steps, t, volume)
}

func (s *Simulator) PrintFinal(elapsed time.Duration, steps int) {
	if steps == 0 {
		fmt.Printf("\nNo steps taken\n")
		return
	}
	cells := s.Params.NX * s.Params.NY
	rate := float64(elapsed.Microseconds()) / float64(cells*steps)
	fmt.Printf("\nRate of execution = %8.5f us/(cell*iteration) over %d iterations\n", rate, steps)
}
