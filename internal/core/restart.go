package core

// RestartController implements spec.md §4.4: Glucose-style forcing and
// blocking restarts driven by fast/slow LBD EMAs and a trail-size EMA, plus
// search/stabilize mode alternation with Luby-scaled segment lengths.
//
// Grounded on sat/avg.go's EMA primitive and
// crillab-gophersat/solver/lbd.go's lbdStats (a "recent vs. total average"
// forcing condition); the three-EMA layout (fast LBD, slow LBD, trail) and
// blocking condition follow spec.md directly rather than gophersat's single
// ring buffer, since spec.md is explicit about wanting three independent
// signals.
type RestartController struct {
	fastLBD ema
	slowLBD ema
	trail   ema

	forceThreshold float64 // rst_lbd_thr
	blockThreshold float64 // rst_asg_thr
	minStep        int     // rst_step
	asgWarmup      int     // rst_asg_len: samples required before blocking applies

	conflictsSinceRestart int

	stabilize    bool
	stabScale    float64 // rst_stb_scl
	lubyIndex    uint64
	lubyInStage  uint64
	conflictsAll int64
	stageEvery   int64 // conflicts between mode flips while searching
}

func NewRestartController(opt RestartOptions) *RestartController {
	return &RestartController{
		fastLBD:        newEMA(windowToDecay(opt.LBDFastLen)),
		slowLBD:        newEMA(windowToDecay(opt.LBDSlowLen)),
		trail:          newEMA(windowToDecay(opt.TrailLen)),
		forceThreshold: opt.LBDThreshold,
		blockThreshold: opt.TrailThreshold,
		minStep:        opt.Step,
		asgWarmup:      opt.TrailLen,
		stabScale:      opt.StabilizeScale,
		lubyIndex:      1,
		stageEvery:     1000,
	}
}

// RestartOptions is the slice of the configuration record relevant to the
// restart controller (spec.md §6).
type RestartOptions struct {
	LBDFastLen     int
	LBDSlowLen     int
	LBDThreshold   float64
	TrailLen       int
	TrailThreshold float64
	Step           int
	StabilizeScale float64
	StabilizeOn    bool
}

// OnConflict records a conflict's LBD and the trail size at the time of the
// conflict; must be called once per conflict before ShouldRestart is
// queried.
func (r *RestartController) OnConflict(lbd int, trailLen int) {
	r.fastLBD.Add(float64(lbd))
	r.slowLBD.Add(float64(lbd))
	r.trail.Add(float64(trailLen))
	r.conflictsSinceRestart++
	r.conflictsAll++
}

// ShouldRestart reports whether the search loop should force the trail back
// to level 0 now.
func (r *RestartController) ShouldRestart(currentTrailLen int) bool {
	if r.stabilize {
		return r.stabilizeShouldRestart()
	}

	if r.conflictsSinceRestart < r.minStep {
		return false
	}
	if r.slowLBD.Val() == 0 {
		return false
	}
	if r.fastLBD.Val()/r.slowLBD.Val() <= r.forceThreshold {
		return false
	}
	if r.blocked(currentTrailLen) {
		return false
	}
	return true
}

// blocked reports whether a forced restart should be suppressed because the
// trail is unusually long relative to its recent average (the search is
// making progress). Blocking is disabled until the trail EMA has received
// TrailLen samples, per spec.md's resolution of this open question.
func (r *RestartController) blocked(currentTrailLen int) bool {
	if !r.trail.Ready(r.asgWarmup) {
		return false
	}
	if r.trail.Val() == 0 {
		return false
	}
	return float64(currentTrailLen)/r.trail.Val() > r.blockThreshold
}

// stabilizeShouldRestart applies the Luby-scaled restart schedule used
// while the controller is in "stabilize" mode.
func (r *RestartController) stabilizeShouldRestart() bool {
	segment := uint64(float64(luby(r.lubyIndex)) * r.stabScale)
	if segment == 0 {
		segment = 1
	}
	if uint64(r.conflictsSinceRestart) < segment {
		return false
	}
	r.lubyIndex++
	return true
}

// NotifyRestart resets the per-restart conflict counter. Called by the
// search loop immediately after performing a restart.
func (r *RestartController) NotifyRestart() {
	r.conflictsSinceRestart = 0
}

// MaybeToggleStabilize flips between search and stabilize modes on a
// conflict-count schedule, doubling the stage length each time like a Luby
// outer schedule.
func (r *RestartController) MaybeToggleStabilize(enabled bool) {
	if !enabled {
		r.stabilize = false
		return
	}
	if r.conflictsAll < r.stageEvery {
		return
	}
	r.stabilize = !r.stabilize
	r.conflictsAll = 0
	r.stageEvery *= 2
	r.conflictsSinceRestart = 0
	r.lubyIndex = 1
}
