// Package config defines the solver's configuration record: every
// recognized option from spec.md §6, its default, and a helper to register
// them as command-line flags.
//
// Grounded on yass's main.go, which declares package-level flag.* vars
// (flagCPUProfile, flagMemProfile, flagMaxConflict) parsed once in
// parseConfig and copied into a small config struct; generalized here from
// four flags to the full option table, with Register taking a *flag.FlagSet
// so both cmd/yasolver and tests can build independent flag sets.
package config

import "flag"

// Options is the full configuration record recognized by the solver core.
type Options struct {
	// Chronological backtracking threshold: if current_level -
	// backtrack_level >= CBTThreshold, backtrack to current_level-1
	// instead of the analyzer's derived level.
	CBTThreshold int

	// ClauseLimit caps the number of clauses the arena may hold; 0 means
	// unbounded.
	ClauseLimit int

	// Simplifier / BVE tuning.
	ElimClauseLimit int // elim_cls_lim: max resolvent size to accept
	ElimGrowthLimit int // elim_grw_lim: max resolvent count growth to accept
	ElimTrigger     int // elim_trigger: conflicts between simplification rounds
	ElimVarOcc      int // elim_var_occ: max occurrences for a var to be eliminable

	// Restart controller tuning (see RestartOptions in internal/core).
	RestartTrailLen       int     // rst_asg_len
	RestartTrailThreshold float64 // rst_asg_thr
	RestartLBDLen         int     // rst_lbd_len
	RestartLBDSlowLen     int     // rst_lbd_slw
	RestartLBDThreshold   float64 // rst_lbd_thr
	StabilizeScale        float64 // rst_stb_scl
	RestartStep           int     // rst_step

	// Timeout is the wall-clock time budget in seconds, counted from the
	// start of Solve.
	Timeout float64

	// Variable-activity decay annealing bounds.
	VarDecayBegin float64 // vrw_dcy_beg
	VarDecayEnd   float64 // vrw_dcy_end

	// Boolean toggles.
	Adaptive    bool
	Elim        bool
	Reduce      bool
	Rephase     bool
	ReasonSide  bool // rsr: reason-side rewarding
	Stabilize   bool
	Certify     bool
	PhaseSaving bool
}

// Default returns the configuration record with every value set to
// spec.md §6's literal defaults.
func Default() Options {
	return Options{
		CBTThreshold:          100,
		ClauseLimit:           0,
		ElimClauseLimit:       100,
		ElimGrowthLimit:       0,
		ElimTrigger:           40000,
		ElimVarOcc:            10000,
		RestartTrailLen:       3500,
		RestartTrailThreshold: 1.40,
		RestartLBDLen:         50,
		RestartLBDSlowLen:     10000,
		RestartLBDThreshold:   0.70,
		StabilizeScale:        2.0,
		RestartStep:           50,
		Timeout:               5000.0,
		VarDecayBegin:         0.75,
		VarDecayEnd:           0.98,
		Adaptive:              true,
		Elim:                  true,
		Reduce:                true,
		Rephase:               true,
		ReasonSide:            true,
		Stabilize:             true,
		Certify:               false,
		PhaseSaving:           true,
	}
}

// Register binds every option in opt to a flag on fs, using spec.md's
// stable option keys as flag names.
func (opt *Options) Register(fs *flag.FlagSet) {
	fs.IntVar(&opt.CBTThreshold, "cbt_thr", opt.CBTThreshold, "chronological backtracking threshold")
	fs.IntVar(&opt.ClauseLimit, "clause_limit", opt.ClauseLimit, "maximum number of clauses (0 = unbounded)")
	fs.IntVar(&opt.ElimClauseLimit, "elim_cls_lim", opt.ElimClauseLimit, "max resolvent size accepted by BVE")
	fs.IntVar(&opt.ElimGrowthLimit, "elim_grw_lim", opt.ElimGrowthLimit, "max resolvent-count growth accepted by BVE")
	fs.IntVar(&opt.ElimTrigger, "elim_trigger", opt.ElimTrigger, "conflicts between simplification rounds")
	fs.IntVar(&opt.ElimVarOcc, "elim_var_occ", opt.ElimVarOcc, "max occurrences for a variable to be eliminable")
	fs.IntVar(&opt.RestartTrailLen, "rst_asg_len", opt.RestartTrailLen, "trail-size EMA window")
	fs.Float64Var(&opt.RestartTrailThreshold, "rst_asg_thr", opt.RestartTrailThreshold, "restart-blocking trail ratio threshold")
	fs.IntVar(&opt.RestartLBDLen, "rst_lbd_len", opt.RestartLBDLen, "fast LBD EMA window")
	fs.IntVar(&opt.RestartLBDSlowLen, "rst_lbd_slw", opt.RestartLBDSlowLen, "slow LBD EMA window")
	fs.Float64Var(&opt.RestartLBDThreshold, "rst_lbd_thr", opt.RestartLBDThreshold, "restart-forcing LBD ratio threshold")
	fs.Float64Var(&opt.StabilizeScale, "rst_stb_scl", opt.StabilizeScale, "Luby segment scale while stabilizing")
	fs.IntVar(&opt.RestartStep, "rst_step", opt.RestartStep, "minimum conflicts between restarts")
	fs.Float64Var(&opt.Timeout, "timeout", opt.Timeout, "solve timeout in seconds")
	fs.Float64Var(&opt.VarDecayBegin, "vrw_dcy_beg", opt.VarDecayBegin, "initial variable-activity decay rate")
	fs.Float64Var(&opt.VarDecayEnd, "vrw_dcy_end", opt.VarDecayEnd, "annealed variable-activity decay rate")
	fs.BoolVar(&opt.Adaptive, "adaptive", opt.Adaptive, "enable heuristic adaptation")
	fs.BoolVar(&opt.Elim, "elim", opt.Elim, "enable bounded variable elimination")
	fs.BoolVar(&opt.Reduce, "reduce", opt.Reduce, "enable LBD-based learnt clause reduction")
	fs.BoolVar(&opt.Rephase, "rephase", opt.Rephase, "enable periodic rephasing")
	fs.BoolVar(&opt.ReasonSide, "rsr", opt.ReasonSide, "enable reason-side activity rewarding")
	fs.BoolVar(&opt.Stabilize, "stabilize", opt.Stabilize, "enable search/stabilize mode alternation")
	fs.BoolVar(&opt.Certify, "certify", opt.Certify, "emit a DRAT proof on UNSAT")
	fs.BoolVar(&opt.PhaseSaving, "phase_saving", opt.PhaseSaving, "save the last assigned phase per variable")
}
