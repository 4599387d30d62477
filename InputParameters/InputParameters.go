package InputParameters

import (
	"fmt"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/gotsunami/solvers"
	"github.com/notargets/gotsunami/utils"
)

// Parameters obtained from the YAML input file
type InputParameters2D struct {
	Title           string             `yaml:"Title"`
	NX              int                `yaml:"NX"`
	NY              int                `yaml:"NY"`
	XLen            float64            `yaml:"XLen"`
	YLen            float64            `yaml:"YLen"`
	EndTime         float64            `yaml:"EndTime"`
	Solver          string             `yaml:"Solver"`
	FramesPerOutput int                `yaml:"FramesPerOutput"`
	CoarseFactor    int                `yaml:"CoarseFactor"`
	CheckPointEvery int                `yaml:"CheckPointEvery"` // frames between checkpoints, 0 disables
	CheckPointFile  string             `yaml:"CheckPointFile"`
	Boundaries      BoundaryParameters `yaml:"Boundaries"`
	Setup           SetupParameters    `yaml:"Setup"`
}

type BoundaryParameters struct {
	Left   string `yaml:"Left"`
	Right  string `yaml:"Right"`
	Top    string `yaml:"Top"`
	Bottom string `yaml:"Bottom"`
}

type SetupParameters struct {
	Type string `yaml:"Type"`
	// DamBreak1D
	HeightLeft    float64 `yaml:"HeightLeft"`
	HeightRight   float64 `yaml:"HeightRight"`
	MomentumLeft  float64 `yaml:"MomentumLeft"`
	MomentumRight float64 `yaml:"MomentumRight"`
	Location      float64 `yaml:"Location"`
	// DamBreak2D
	CenterX       float64 `yaml:"CenterX"`
	CenterY       float64 `yaml:"CenterY"`
	Radius        float64 `yaml:"Radius"`
	HeightInside  float64 `yaml:"HeightInside"`
	HeightOutside float64 `yaml:"HeightOutside"`
	Bathymetry    float64 `yaml:"Bathymetry"`
	// TsunamiEvent2D
	BathymetryFile   string   `yaml:"BathymetryFile"`
	DisplacementFile string   `yaml:"DisplacementFile"`
	EpicenterOffsetX *float64 `yaml:"EpicenterOffsetX"`
	EpicenterOffsetY *float64 `yaml:"EpicenterOffsetY"`
	// CheckPoint
	CheckPointFile string `yaml:"CheckPointFile"`
}

type SetupType uint8

const (
	SETUP_DamBreak1D SetupType = iota
	SETUP_DamBreak2D
	SETUP_ArtificialTsunami2D
	SETUP_TsunamiEvent2D
	SETUP_CheckPoint
)

var (
	SetupNames = map[string]SetupType{
		"dambreak1d":          SETUP_DamBreak1D,
		"dambreak2d":          SETUP_DamBreak2D,
		"artificialtsunami2d": SETUP_ArtificialTsunami2D,
		"tsunamievent2d":      SETUP_TsunamiEvent2D,
		"checkpoint":          SETUP_CheckPoint,
	}
	SetupPrintNames = []string{"Dam Break 1D", "Dam Break 2D", "Artificial Tsunami 2D",
		"Tsunami Event 2D", "CheckPoint"}
)

func (st SetupType) Print() (txt string) {
	txt = SetupPrintNames[st]
	return
}

func (ip *InputParameters2D) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	ip.SetDefaults()
	return ip.Validate()
}

// SetDefaults fills parameters left out of the input file
func (ip *InputParameters2D) SetDefaults() {
	if ip.NX == 0 {
		ip.NX = 50
	}
	if ip.NY == 0 {
		ip.NY = 50
	}
	if ip.XLen == 0 {
		ip.XLen = 10
	}
	if ip.YLen == 0 {
		ip.YLen = 10
	}
	if ip.EndTime == 0 {
		ip.EndTime = 1.25
	}
	if ip.Solver == "" {
		ip.Solver = "fwave"
	}
	if ip.FramesPerOutput == 0 {
		ip.FramesPerOutput = utils.DefaultFramesPerOutput
	}
	if ip.CoarseFactor == 0 {
		ip.CoarseFactor = 1
	}
	if ip.Setup.Type == "" {
		ip.Setup.Type = "DamBreak2D"
	}
	if ip.Setup.EpicenterOffsetX == nil {
		off := -ip.XLen / 2
		ip.Setup.EpicenterOffsetX = &off
	}
	if ip.Setup.EpicenterOffsetY == nil {
		off := -ip.YLen / 2
		ip.Setup.EpicenterOffsetY = &off
	}
}

func (ip *InputParameters2D) Validate() (err error) {
	switch {
	case ip.NX < 1 || ip.NY < 1:
		err = fmt.Errorf("grid must have at least one cell in each direction, have %dx%d", ip.NX, ip.NY)
	case ip.XLen <= 0 || ip.YLen <= 0:
		err = fmt.Errorf("domain lengths must be positive, have %g x %g", ip.XLen, ip.YLen)
	case ip.EndTime < 0:
		err = fmt.Errorf("end time must not be negative, have %g", ip.EndTime)
	case ip.FramesPerOutput < 1:
		err = fmt.Errorf("FramesPerOutput must be at least 1, have %d", ip.FramesPerOutput)
	case ip.CoarseFactor < 1:
		err = fmt.Errorf("factor for coarse output can't be smaller than 1, have %d", ip.CoarseFactor)
	case ip.CheckPointEvery < 0:
		err = fmt.Errorf("CheckPointEvery must not be negative, have %d", ip.CheckPointEvery)
	}
	if err != nil {
		return
	}
	if _, ok := solvers.SolverNames[strings.ToLower(ip.Solver)]; !ok {
		return fmt.Errorf("unable to use solver named %s", ip.Solver)
	}
	if _, err = ip.SetupType(); err != nil {
		return
	}
	_, err = ip.BoundaryConditions()
	return
}

func (ip *InputParameters2D) SolverType() solvers.SolverType {
	return solvers.NewSolverType(ip.Solver)
}

func (ip *InputParameters2D) SetupType() (st SetupType, err error) {
	var ok bool
	if st, ok = SetupNames[strings.ToLower(ip.Setup.Type)]; !ok {
		err = fmt.Errorf("unknown setup %s", ip.Setup.Type)
	}
	return
}

func (ip *InputParameters2D) BoundaryConditions() (bcs utils.Boundaries, err error) {
	for _, e := range []struct {
		name string
		dst  *utils.BCType
	}{
		{ip.Boundaries.Left, &bcs.Left},
		{ip.Boundaries.Right, &bcs.Right},
		{ip.Boundaries.Top, &bcs.Top},
		{ip.Boundaries.Bottom, &bcs.Bottom},
	} {
		if *e.dst, err = utils.ParseBCName(e.name); err != nil {
			return
		}
	}
	return
}

// CellSize is the global cell extent in x and y
func (ip *InputParameters2D) CellSize() (dx, dy float64) {
	return ip.XLen / float64(ip.NX), ip.YLen / float64(ip.NY)
}

func (ip *InputParameters2D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d x %d]\t\t= Cells\n", ip.NX, ip.NY)
	fmt.Printf("[%g x %g]\t\t= Domain Size\n", ip.XLen, ip.YLen)
	fmt.Printf("%8.5f\t\t= EndTime\n", ip.EndTime)
	fmt.Printf("[%s]\t\t\t= Solver\n", ip.Solver)
	fmt.Printf("[%s]\t= Setup\n", ip.Setup.Type)
	fmt.Printf("[%d]\t\t\t\t= Steps Per Frame\n", ip.FramesPerOutput)
	fmt.Printf("[%d]\t\t\t\t= Coarse Factor\n", ip.CoarseFactor)
	if bcs, err := ip.BoundaryConditions(); err == nil {
		fmt.Printf("BCs = %s\n", bcs)
	}
	if ip.CheckPointEvery > 0 {
		fmt.Printf("[%d] -> [%s]\t= CheckPoint Frames -> File\n", ip.CheckPointEvery, ip.CheckPointFile)
	}
}
