package advice

import "fmt"

// collaborationStrategy words advice in the third person, describing how
// the rest of the team should play around an ally's weakness.
type collaborationStrategy struct{}

func (collaborationStrategy) Name() string             { return "collaboration" }
func (collaborationStrategy) Perspective() Perspective { return PerspectiveCollaboration }

func (s collaborationStrategy) GenerateAdvice(problemType ProblemType, data ProblemData) *GameAdvice {
	switch problemType {
	case ProblemLaningCSDeficit:
		return s.csDeficit(data)
	case ProblemLaningDominated:
		return s.dominated(data)
	case ProblemMidGameDecline:
		return s.midGameDecline(data)
	case ProblemPoorFarming:
		return s.poorFarming(data)
	case ProblemLowKillParticipation:
		return s.lowKillParticipation(data)
	case ProblemLowTeamfightParticipation:
		return s.lowTeamfightParticipation(data)
	case ProblemHighDeathRate:
		return s.highDeathRate(data)
	case ProblemPoorPositioning:
		return s.poorPositioning(data)
	case ProblemLowVisionScore:
		return s.lowVisionScore(data)
	default:
		// Champion-pool problems don't affect how teammates should
		// play around this ally.
		return nil
	}
}

func (s collaborationStrategy) csDeficit(data ProblemData) *GameAdvice {
	teammate := data.TargetName
	if teammate == "" {
		teammate = "this teammate"
	}
	return NewBuilder().
		Title(fmt.Sprintf("Teammate %s needs laning help", data.Role)).
		Problem(fmt.Sprintf("%s is weak on lane CS and regularly gets pushed around (%.1f behind on average)", teammate, -data.Value)).
		Evidence("this teammate tends to fall behind in lane and needs support").
		Suggestion(fmt.Sprintf("Jungle: counter-gank the %s lane more often to protect their farm", data.Role)).
		Suggestion(fmt.Sprintf("Support/mid: help ward the %s lane so they aren't ganked", data.Role)).
		Suggestion("Don't over-rely on this lane to carry — have a backup plan").
		Suggestion(fmt.Sprintf("Mid: after level 6, consider roaming to the %s lane to ease the pressure", data.Role)).
		Priority(3).
		Category(CategoryLaning).
		Perspective(s.Perspective()).
		TargetPlayer(teammate).
		AffectedRole(data.Role).
		Build()
}

func (s collaborationStrategy) dominated(data ProblemData) *GameAdvice {
	teammate := data.TargetName
	if teammate == "" {
		teammate = "this teammate"
	}
	return NewBuilder().
		Title(fmt.Sprintf("Teammate %s needs protection early", data.Role)).
		Problem(fmt.Sprintf("%s dies easily early and has weak pressure resistance", teammate)).
		Evidence("this teammate dies often in lane and needs team support").
		Suggestion(fmt.Sprintf("Jungle: stay on the %s side of the map early, counter-gank often", data.Role)).
		Suggestion(fmt.Sprintf("Team: help ward the %s lane to cut down gank attempts", data.Role)).
		Suggestion("Lower expectations — don't rely on this lane to carry, just stabilize it").
		Suggestion("Resource tilt: let other lanes' leads pull this one along").
		Suggestion(fmt.Sprintf("Respond fast: if %s gets caught, teleport or rotate immediately", data.Role)).
		Priority(4).
		Category(CategoryLaning).
		Perspective(s.Perspective()).
		TargetPlayer(teammate).
		AffectedRole(data.Role).
		Build()
}

func (s collaborationStrategy) midGameDecline(data ProblemData) *GameAdvice {
	teammate := data.TargetName
	if teammate == "" {
		teammate = "this teammate"
	}
	return NewBuilder().
		Title(fmt.Sprintf("Teammate %s's mid-game farming is weak", data.Role)).
		Problem(fmt.Sprintf("%s's economy efficiency drops %.0f%% mid-game — their tempo has an issue", teammate, data.Severity*100.0)).
		Evidence("this teammate tends to fall behind mid-game and the team should cover for it").
		Suggestion("Let camps and waves go to this teammate when you can spare them").
		Suggestion("After clearing your own jungle, leave the small camps for them").
		Suggestion("Avoid pointless fights before their items come online").
		Suggestion("Give them time to scale — protect their farming window").
		Priority(2).
		Category(CategoryFarming).
		Perspective(s.Perspective()).
		TargetPlayer(teammate).
		Build()
}

func (s collaborationStrategy) poorFarming(data ProblemData) *GameAdvice {
	teammate := data.TargetName
	if teammate == "" {
		teammate = "this teammate"
	}
	return NewBuilder().
		Title("Teammate's farming is weak").
		Problem(fmt.Sprintf("%s's CS/min of %.1f is low", teammate, data.Value)).
		Evidence("this teammate farms slowly and may fall behind on items late").
		Suggestion("Other lanes should farm more — this lane may not carry, someone else needs to").
		Suggestion("Push for a quicker game — don't stretch it into the late game").
		Suggestion("Protect them from enemy jungle pressure").
		Priority(2).
		Category(CategoryFarming).
		Perspective(s.Perspective()).
		TargetPlayer(teammate).
		Build()
}

func (s collaborationStrategy) lowKillParticipation(data ProblemData) *GameAdvice {
	teammate := data.TargetName
	if teammate == "" {
		teammate = "this teammate"
	}
	return NewBuilder().
		Title("Teammate's fight involvement is weak").
		Problem(fmt.Sprintf("%s only has %.0f%% kill participation — often missing fights", teammate, data.Value*100.0)).
		Evidence("this teammate likely prefers split-pushing or farming jungle").
		Suggestion("Adjust expectations — don't count on them for every fight").
		Suggestion("Signal fight locations early to give them time to arrive").
		Suggestion("If they're split-pushing, let them draw attention while the rest engage").
		Suggestion("Confirm their position before committing to a fight").
		Priority(3).
		Category(CategoryTeamfight).
		Perspective(s.Perspective()).
		TargetPlayer(teammate).
		Build()
}

func (s collaborationStrategy) lowTeamfightParticipation(data ProblemData) *GameAdvice {
	teammate := data.TargetName
	if teammate == "" {
		teammate = "this teammate"
	}
	adaptation := map[string]string{
		"Jungle":  "a jungler who skips fights may be farming their own jungle back — let them, just call objectives early",
		"Mid":     "a mid laner who doesn't roam probably wants to hold the wave — let them, others should look for their own plays",
		"Top":     "slow rotations are normal for top — fight small, don't expect a teleport every time",
		"ADC":     "low participation early often means they're farming for items — let them, then regroup mid-game",
		"Support": "a support who doesn't roam may be guarding the carry — let them stay bottom, be careful elsewhere",
	}
	note, ok := adaptation[data.Role]
	if !ok {
		note = "this teammate's fight instincts are weak — plan around not relying on them"
	}

	return NewBuilder().
		Title(fmt.Sprintf("Team adaptation: %s shows up to fights rarely", data.Role)).
		Problem(fmt.Sprintf("%s averages only %.1f assists a game — often absent from fights", teammate, data.Value)).
		Evidence(orDefault(data.ExtraInfo, "this teammate leans toward farming or splitting rather than grouping")).
		Suggestion(fmt.Sprintf("Understand their style: %s", note)).
		Suggestion("Signal objectives at least 60 seconds out to give them time to get there").
		Suggestion("Pick fight locations near where this teammate already is").
		Suggestion("Don't force a fight when they're far away — that's an easy 4v5").
		Suggestion("If they're splitting, use it — draw attention while the rest take an objective").
		Suggestion("Communicate kindly: ask them to group, don't blame them for not showing").
		Priority(3).
		Category(CategoryTeamfight).
		Perspective(s.Perspective()).
		AffectedRole(data.Role).
		TargetPlayer(teammate).
		Build()
}

func (s collaborationStrategy) highDeathRate(data ProblemData) *GameAdvice {
	teammate := data.TargetName
	if teammate == "" {
		teammate = "this teammate"
	}
	protection := map[string][]string{
		"ADC": {
			"Full protection: support and tank should stick close, don't let assassins reach them",
			"Deep vision: flood their activity zones with wards so they aren't caught",
			"Save them first: use abilities to rescue them the instant they're dove on",
			"Gentle comms: suggest 'play safer' kindly — tone matters here",
		},
		"Mid": {
			"Think about their position before engaging a fight",
			"Keep river vision up near mid so they aren't ganked blind",
			"Let camps and waves go to them so they hit items sooner",
			"Call enemy assassin missing the moment you see it",
		},
		"Jungle": {
			"Back them up with vision and presence when they counter-jungle",
			"Help clear vision around objectives before they commit",
			"Ping 'careful' the instant you see an invade coming",
			"Reduce reliance on them to dictate jungle tempo early",
		},
		"Top": {
			"Don't let them engage blind — tell them to wait for the group",
			"Follow up immediately once they commit, don't leave them alone",
			"Remind them pre-fight to hold position rather than overcommit",
			"Lead with encouragement, not blame, if they're on tilt",
		},
		"Support": {
			"Follow them when they ward, don't let them get caught alone",
			"Consider a tankier build if it helps protect the team",
			"Ping danger the moment they check brush or overextend",
			"Remind them kindly to stay grouped rather than solo",
		},
	}
	suggestions, ok := protection[data.Role]
	if !ok {
		suggestions = []string{
			"Give them extra protection — they need the support",
			"Keep vision up around where they operate",
			"Respond fast if they're caught",
			"Communicate kindly, without blame",
		}
	}

	b := NewBuilder().
		Title(fmt.Sprintf("Protect this teammate: %s's survivability is weak", data.Role)).
		Problem(fmt.Sprintf("%s dies %.1f times a game on average — the team's weak point", teammate, data.Value)).
		Evidence(orDefault(data.ExtraInfo, "this teammate dies often and needs team protection"))
	for _, t := range suggestions {
		b = b.Suggestion(t)
	}
	return b.
		Suggestion("Mindset matters: encourage rather than blame — tilt makes deaths worse, not better").
		Priority(4).
		Category(CategoryTeamfight).
		Perspective(s.Perspective()).
		AffectedRole(data.Role).
		TargetPlayer(teammate).
		Build()
}

func (s collaborationStrategy) poorPositioning(data ProblemData) *GameAdvice {
	teammate := data.TargetName
	if teammate == "" {
		teammate = "this teammate"
	}
	return NewBuilder().
		Title("Teammate dies early in fights").
		Problem(fmt.Sprintf("%s's teamfight positioning is aggressive and they get caught first", teammate)).
		Evidence("this teammate's survival rate in fights is low").
		Suggestion("Support: prioritize protecting this teammate with shields or heals").
		Suggestion("Don't expect them to engage — let the tank open, they follow up").
		Suggestion("Prioritize killing threats to them rather than chasing kills").
		Suggestion("Fallback plan: if they die first, disengage immediately").
		Priority(3).
		Category(CategoryPositioning).
		Perspective(s.Perspective()).
		TargetPlayer(teammate).
		AffectedRole(data.Role).
		Build()
}

func (s collaborationStrategy) lowVisionScore(data ProblemData) *GameAdvice {
	teammate := data.TargetName
	if teammate == "" {
		teammate = "this teammate"
	}
	return NewBuilder().
		Title("Teammate's vision control is insufficient").
		Problem(fmt.Sprintf("%s's vision score of %.1f/min is low — the team needs to cover for it", teammate, data.Value)).
		Evidence("this teammate's warding instincts are weak, team vision pressure is high").
		Suggestion("Others should buy more control wards to cover the gap").
		Suggestion("Jungle/support: take on more of the vision responsibility").
		Suggestion("Prioritize coverage on dragon pit and jungle entrances").
		Suggestion("Remind them kindly to help with vision before objectives").
		Priority(2).
		Category(CategoryVision).
		Perspective(s.Perspective()).
		TargetPlayer(teammate).
		Build()
}
