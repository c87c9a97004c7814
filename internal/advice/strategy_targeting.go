package advice

import "fmt"

// targetingStrategy words advice in the third person, describing an
// opponent's exploitable weakness and how to play around it.
type targetingStrategy struct{}

func (targetingStrategy) Name() string             { return "targeting" }
func (targetingStrategy) Perspective() Perspective { return PerspectiveTargeting }

func (s targetingStrategy) GenerateAdvice(problemType ProblemType, data ProblemData) *GameAdvice {
	switch problemType {
	case ProblemLaningCSDeficit:
		return s.csDeficit(data)
	case ProblemLaningDominated:
		return s.dominated(data)
	case ProblemMidGameDecline:
		return s.midGameDecline(data)
	case ProblemLowKillParticipation:
		return s.lowKillParticipation(data)
	case ProblemLowTeamfightParticipation:
		return s.lowTeamfightParticipation(data)
	case ProblemHighDeathRate:
		return s.highDeathRate(data)
	case ProblemLowVisionScore:
		return s.lowVisionScore(data)
	case ProblemChampionDependency:
		return s.championDependency(data)
	default:
		// PoorFarming, PoorPositioning, ChampionPoolNarrow aren't
		// actionable scouting reports — nothing to exploit there.
		return nil
	}
}

func (s targetingStrategy) csDeficit(data ProblemData) *GameAdvice {
	target := data.TargetName
	if target == "" {
		target = "the opponent"
	}
	return NewBuilder().
		Title(fmt.Sprintf("Exploitable weakness: %s's lane CS is weak", data.Role)).
		Problem(fmt.Sprintf("%s averages %.1f CS behind by 10 minutes — easy to keep down", target, -data.Value)).
		Evidence("opponent is consistently outfarmed and loses the gold race in lane").
		Suggestion("Pick a lane-dominant champion to press the advantage").
		Suggestion("Trade aggressively to stack up both the HP and CS lead").
		Suggestion("Use your early levels to force them back to base").
		Suggestion("Coordinate with jungle to hold the wave for a dive").
		Suggestion("Convert the gold lead into an early item spike and snowball").
		Priority(4).
		Category(CategoryLaning).
		Perspective(s.Perspective()).
		TargetPlayer(target).
		AffectedRole(data.Role).
		Build()
}

func (s targetingStrategy) dominated(data ProblemData) *GameAdvice {
	target := data.TargetName
	if target == "" {
		target = "the opponent"
	}
	return NewBuilder().
		Title(fmt.Sprintf("Exploitable: %s dies easily early", data.Role)).
		Problem(fmt.Sprintf("%s has weak pressure resistance and dies often early", target)).
		Evidence("opponent's lane phase shows frequent deaths or large deficits").
		Suggestion(fmt.Sprintf("Jungle priority: focus early ganks on the %s lane", data.Role)).
		Suggestion("Pick a strong early-pressure champion").
		Suggestion("Look for a level 3/6 all-in to snowball the lead").
		Suggestion("Deny their vision to set up the gank").
		Suggestion(fmt.Sprintf("Lean jungle resources toward punishing %s", data.Role)).
		Priority(5).
		Category(CategoryLaning).
		Perspective(s.Perspective()).
		TargetPlayer(target).
		AffectedRole(data.Role).
		Build()
}

func (s targetingStrategy) midGameDecline(data ProblemData) *GameAdvice {
	target := data.TargetName
	if target == "" {
		target = "the opponent"
	}
	return NewBuilder().
		Title("Exploitable: opponent's mid-game farming is weak").
		Problem(fmt.Sprintf("%s's economy efficiency drops in the mid-game, easy to outpace", target)).
		Evidence("opponent's mid-game tempo is poor, easy to fall behind them").
		Suggestion("Force fights from 10-20 minutes while they're behind on tempo").
		Suggestion("Contest jungle resources and dragon control").
		Suggestion("Push the gold lead while they're struggling to farm").
		Suggestion("Punish them decisively whenever they're caught alone").
		Priority(3).
		Category(CategoryFarming).
		Perspective(s.Perspective()).
		TargetPlayer(target).
		Build()
}

func (s targetingStrategy) lowKillParticipation(data ProblemData) *GameAdvice {
	target := data.TargetName
	if target == "" {
		target = "the opponent"
	}
	return NewBuilder().
		Title("Exploitable: opponent's fight awareness is weak").
		Problem(fmt.Sprintf("%s has low kill participation — easy to get a 5v4", target)).
		Evidence(fmt.Sprintf("kill participation only %.0f%%", data.Value*100.0)).
		Suggestion("Force fights while you have the numbers advantage").
		Suggestion("Split a lane to draw attention and create the 5v4").
		Suggestion("Punish them the moment they're caught alone").
		Priority(3).
		Category(CategoryTeamfight).
		Perspective(s.Perspective()).
		TargetPlayer(target).
		Build()
}

func (s targetingStrategy) lowTeamfightParticipation(data ProblemData) *GameAdvice {
	target := data.TargetName
	if target == "" {
		target = "the opponent"
	}
	tactic := map[string]string{
		"Jungle":  "their jungler rarely joins fights — invade freely, they won't reach in time for objectives",
		"Mid":     "their mid laner doesn't roam much — push and rotate to create a numbers edge",
		"Top":     "their top laner is slow to rotate — take objectives on the bottom half and force a teleport",
		"ADC":     "their carry doesn't commit to fights — take the 5v4 whenever it's offered",
		"Support": "their support rarely roams — pressure or dive bottom lane 2v1",
	}
	note, ok := tactic[data.Role]
	if !ok {
		note = "the opponent's fight involvement is weak — create a numbers advantage"
	}

	return NewBuilder().
		Title(fmt.Sprintf("Tactical opening: %s rarely shows up to fights", data.Role)).
		Problem(fmt.Sprintf("%s averages only %.1f assists a game — often missing or late to fights", target, data.Value)).
		Evidence(orDefault(data.ExtraInfo, "history shows very low fight participation")).
		Suggestion(fmt.Sprintf("Core read: %s", note)).
		Suggestion("Move fast — force the fight the moment you see they're absent").
		Suggestion("Group up whenever dragon or herald is about to spawn, force the decision").
		Suggestion("Split push to bait them out and take the even fight elsewhere").
		Suggestion("Ping and call it out the second you spot them out of position").
		Priority(4).
		Category(CategoryTeamfight).
		Perspective(s.Perspective()).
		AffectedRole(data.Role).
		TargetPlayer(target).
		Build()
}

func (s targetingStrategy) highDeathRate(data ProblemData) *GameAdvice {
	target := data.TargetName
	if target == "" {
		target = "the opponent"
	}
	tactics := map[string][]string{
		"ADC": {
			"Priority target: the moment a fight starts, find and focus this carry",
			"Best opener: support or tank hooks or flashes onto this ADC — nearly a guaranteed kill",
			"If you have an assassin, dedicate them to cutting this player down",
		},
		"Mid": {
			"They overextend — charging them down directly works well",
			"Bait their key ability with fake exposure, then punish",
			"Set an ambush in brush — they tend to check it carelessly",
		},
		"Jungle": {
			"Ambush their usual camps — with vision it's an easy pick",
			"They commit impulsively to objective fights — good pick window",
			"Deaths this high suggest poor awareness — invade confidently",
		},
		"Top": {
			"Bait them into engaging, then collapse and punish",
			"Don't take their engage — kite until they're low, then turn",
			"Punish the instant their key ability is on cooldown",
		},
		"Support": {
			"Kill the support first — it strips the enemy of peel and control",
			"Their positioning is loose — a hook is close to a guaranteed kill",
			"They overextend on wards — good window to punish",
		},
	}
	suggestions, ok := tactics[data.Role]
	if !ok {
		suggestions = []string{
			"Priority target: focus this player in fights",
			"Study their positioning habits for mistakes to punish",
			"Set up ambushes on routes they commonly take",
		}
	}

	b := NewBuilder().
		Title(fmt.Sprintf("Soft target: %s's survivability is very weak", data.Role)).
		Problem(fmt.Sprintf("%s dies %.1f times a game on average — the team's biggest liability", target, data.Value)).
		Evidence(orDefault(data.ExtraInfo, "this player dies often and is the easiest kill on the enemy team"))
	for _, t := range suggestions {
		b = b.Suggestion(t)
	}
	return b.
		Suggestion("Team alignment: tell your team early to focus this player every fight").
		Priority(5).
		Category(CategoryTeamfight).
		Perspective(s.Perspective()).
		AffectedRole(data.Role).
		TargetPlayer(target).
		Build()
}

func (s targetingStrategy) lowVisionScore(data ProblemData) *GameAdvice {
	target := data.TargetName
	if target == "" {
		target = "the opponent"
	}
	return NewBuilder().
		Title("Exploitable: opponent's vision control is weak").
		Problem(fmt.Sprintf("%s has low vision score, key areas often go unwarded", target)).
		Evidence(fmt.Sprintf("vision score only %.1f/min", data.Value)).
		Suggestion("Invade their jungle boldly — their vision coverage is thin").
		Suggestion("Take back routes and gank through their blind spots").
		Suggestion("Contest objectives they haven't warded in time").
		Suggestion("Bring more sweepers to clear their few remaining wards").
		Priority(3).
		Category(CategoryVision).
		Perspective(s.Perspective()).
		TargetPlayer(target).
		Build()
}

func (s targetingStrategy) championDependency(data ProblemData) *GameAdvice {
	target := data.TargetName
	if target == "" {
		target = "the opponent"
	}
	return NewBuilder().
		Title("Exploitable: opponent over-relies on one champion").
		Problem(fmt.Sprintf("%s is over-reliant on one champion that isn't winning for them", target)).
		Evidence("one champion makes up most of their games without strong results").
		Suggestion("Ban their signature champion first").
		Suggestion("Pick a hard counter to that champion").
		Suggestion("Study that champion's weaknesses ahead of the game").
		Priority(3).
		Category(CategoryChampion).
		Perspective(s.Perspective()).
		TargetPlayer(target).
		Build()
}
