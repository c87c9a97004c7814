package advice

import "fmt"

// selfImprovementStrategy words advice in the second person, coaching the
// local player on how to get better.
type selfImprovementStrategy struct{}

func (selfImprovementStrategy) Name() string             { return "self-improvement" }
func (selfImprovementStrategy) Perspective() Perspective { return PerspectiveSelfImprovement }

func (s selfImprovementStrategy) GenerateAdvice(problemType ProblemType, data ProblemData) *GameAdvice {
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
	case ProblemChampionPoolNarrow:
		return s.championPoolNarrow(data)
	case ProblemChampionDependency:
		return s.championDependency(data)
	default:
		return nil
	}
}

func (s selfImprovementStrategy) csDeficit(data ProblemData) *GameAdvice {
	return NewBuilder().
		Title("Your laning CS needs work").
		Problem(fmt.Sprintf("You're averaging %.1f CS behind by 10 minutes — you're regularly outfarmed", -data.Value)).
		Evidence(orDefault(data.ExtraInfo, "CS efficiency during laning phase is running low")).
		Suggestion("Drill last-hitting: 10 minutes in the practice tool every day").
		Suggestion("Tighten your lane positioning so you stop missing CS to harass").
		Suggestion("Use abilities to pick up ranged minions and siege minions").
		Suggestion("Coordinate trade timing and recovery windows with your support").
		Suggestion("Consider a safer matchup pick while this is an issue").
		Priority(4).
		Category(CategoryLaning).
		Perspective(s.Perspective()).
		Build()
}

func (s selfImprovementStrategy) dominated(data ProblemData) *GameAdvice {
	return NewBuilder().
		Title("Laning phase is going badly").
		Problem(fmt.Sprintf("Your %s lane keeps ending up at a disadvantage", data.Role)).
		Evidence(orDefault(data.ExtraInfo, "frequent deaths or large deficits in lane")).
		Suggestion("Play for survival first, CS second, until the matchup improves").
		Suggestion("Ward your lane's flanks so you aren't caught by ganks").
		Suggestion("Study matchup fundamentals so you know your limits").
		Suggestion("Keep a displacement or escape ability up at all times").
		Suggestion("Lean on tankier, lower-risk picks for now").
		Priority(5).
		Category(CategoryLaning).
		Perspective(s.Perspective()).
		AffectedRole(data.Role).
		Build()
}

func (s selfImprovementStrategy) midGameDecline(data ProblemData) *GameAdvice {
	return NewBuilder().
		Title("Mid-game tempo needs tuning").
		Problem(fmt.Sprintf("Your mid-game gold efficiency drops %.0f%% — your roams aren't paying for themselves", data.Severity*100.0)).
		Evidence(orDefault(data.ExtraInfo, "frequent roams without much to show for them")).
		Suggestion("Only roam when a wave is pushed or the cannon minion is about to land").
		Suggestion("Clear camps and the pushed wave before leaving after a roam").
		Suggestion("Balance roaming against just farming — don't roam without a plan").
		Suggestion("Read the map ahead of fights so you spend less time walking").
		Suggestion("Clear jungle resources on the way, don't leave them for later").
		Priority(3).
		Category(CategoryFarming).
		Perspective(s.Perspective()).
		Build()
}

func (s selfImprovementStrategy) poorFarming(data ProblemData) *GameAdvice {
	return NewBuilder().
		Title("Your farming efficiency needs improvement").
		Problem(fmt.Sprintf("Your CS/min of %.1f is below standard", data.Value)).
		Evidence(orDefault(data.ExtraInfo, "farming efficiency running low")).
		Suggestion("Basics: practice last-hitting in the tool").
		Suggestion("Clear your own jungle camps right after lane ends").
		Suggestion("Manage the wave deliberately instead of pushing on instinct").
		Suggestion("Get reps on your champion's clear pattern").
		Priority(3).
		Category(CategoryFarming).
		Perspective(s.Perspective()).
		Build()
}

func (s selfImprovementStrategy) lowKillParticipation(data ProblemData) *GameAdvice {
	return NewBuilder().
		Title("Teamfight involvement needs improvement").
		Problem(fmt.Sprintf("Your kill participation is only %.0f%%", data.Value*100.0)).
		Evidence("you're regularly missing fights or drifting out of position").
		Suggestion("Track teammate positions on the minimap constantly").
		Suggestion("Respond the moment a teammate pings for help").
		Suggestion("Use summoner teleport to join fights if your champion has it").
		Suggestion("Pre-position for fights you can see coming").
		Priority(4).
		Category(CategoryTeamfight).
		Perspective(s.Perspective()).
		Build()
}

func (s selfImprovementStrategy) lowTeamfightParticipation(data ProblemData) *GameAdvice {
	specific := map[string]string{
		"Jungle":  "as jungle, watch river vision and dragon control and pre-position for fights",
		"Mid":     "mid has the fastest rotations, push and roam after using your wave-clear",
		"Top":     "watch your teleport timing, don't save it until the fight is already over",
		"Support": "a support should lead the engage and call fights with pings",
	}
	roleNote, ok := specific[data.Role]
	if !ok {
		roleNote = "pay active attention to teammates and join fights promptly"
	}

	return NewBuilder().
		Title("Teamfight involvement needs improvement").
		Problem(fmt.Sprintf("You're only averaging %.1f assists — low presence in team fights", data.Value)).
		Evidence(orDefault(data.ExtraInfo, "missing key team fights regularly")).
		Suggestion("Check the minimap every 10 seconds for teammate and enemy positions").
		Suggestion("Start moving 60 seconds before a dragon or herald spawn").
		Suggestion(fmt.Sprintf("Positioning: %s", roleNote)).
		Suggestion("Communicate proactively — ping your position once you see a grouping").
		Suggestion("Prioritize fights over farming unless a 1-for-1 clearly favors you").
		Priority(4).
		Category(CategoryTeamfight).
		Perspective(s.Perspective()).
		AffectedRole(data.Role).
		Build()
}

func (s selfImprovementStrategy) highDeathRate(data ProblemData) *GameAdvice {
	roleAdvice := map[string][]string{
		"ADC": {
			"Positioning rule: stay at least 600 units behind your frontline, always",
			"Time your damage for after the enemy's key control ability is used",
			"Survival items: Guardian Angel, Quicksilver Sash, Bloodthirster matter",
		},
		"Mid": {
			"Keep range advantage, don't trade face to face if you don't have to",
			"Commit a full rotation then reset — don't stay in range waiting on cooldowns",
			"Defensive items: Banshee's Veil or Zhonya's Hourglass are good picks",
		},
		"Top": {
			"Pick your fights — don't engage blind, wait for teammates or a pick",
			"Prioritize tank stats over damage when you're behind",
			"Disengage at low health, don't chase a 1-for-1",
		},
		"Jungle": {
			"Clear vision before camps so you aren't counter-jungled",
			"Don't dive deep into enemy jungle while behind",
			"Only gank lanes you have a real read on, don't force a tower dive",
		},
		"Support": {
			"Stay with your carry in fights instead of initiating alone",
			"Check your surroundings before warding, don't overextend",
			"Save hard control for the enemy diver, not for starting fights",
		},
	}
	suggestions, ok := roleAdvice[data.Role]
	if !ok {
		suggestions = []string{
			"Play conservatively — survival matters more than kill count",
			"Track enemy position constantly to avoid being caught",
			"Pick safer positioning in fights, don't overcommit forward",
		}
	}

	b := NewBuilder().
		Title(fmt.Sprintf("Survival problem: averaging %.1f deaths", data.Value)).
		Problem(fmt.Sprintf("Your survivability in %s is weak, and frequent deaths are breaking your team's tempo", data.Role)).
		Evidence(orDefault(data.ExtraInfo, "death count well above average"))
	for _, sug := range suggestions {
		b = b.Suggestion(sug)
	}
	return b.
		Suggestion("Review every death afterward: why did it happen, how do you avoid it next time").
		Priority(5).
		Category(CategoryTeamfight).
		Perspective(s.Perspective()).
		AffectedRole(data.Role).
		Build()
}

func (s selfImprovementStrategy) poorPositioning(data ProblemData) *GameAdvice {
	return NewBuilder().
		Title("Teamfight positioning needs improvement").
		Problem("You're regularly getting caught first or taking excess damage in fights").
		Evidence(orDefault(data.ExtraInfo, "high death rate in team fights")).
		Suggestion("Maintain a safe distance from the frontline").
		Suggestion("Wait for the enemy's key control ability before committing").
		Suggestion("Consider defensive items: Mercury's Treads, Guardian Angel").
		Suggestion("Don't engage first — wait and clean up once fights are already low").
		Priority(4).
		Category(CategoryPositioning).
		Perspective(s.Perspective()).
		AffectedRole(data.Role).
		Build()
}

func (s selfImprovementStrategy) lowVisionScore(data ProblemData) *GameAdvice {
	specific := "always carry a control ward"
	if data.Role == "Support" {
		specific = "prioritize support item upgrades to unlock more ward charges"
	}
	return NewBuilder().
		Title("Vision control needs strengthening").
		Problem(fmt.Sprintf("Your vision score of %.1f/min is below the standard for %s", data.Value, data.Role)).
		Evidence(orDefault(data.ExtraInfo, "ward coverage is insufficient")).
		Suggestion("Buy a control ward on every back").
		Suggestion("Learn key ward spots: dragon pit, jungle entrances, river bushes").
		Suggestion("Set up vision a full minute before contesting an objective").
		Suggestion("Use the sweeper to clear enemy wards at key moments").
		Suggestion(specific).
		Priority(3).
		Category(CategoryVision).
		Perspective(s.Perspective()).
		AffectedRole(data.Role).
		Build()
}

func (s selfImprovementStrategy) championPoolNarrow(data ProblemData) *GameAdvice {
	return NewBuilder().
		Title("Your champion pool needs expanding").
		Problem("Your champion pool is narrow, making you easy to counter-pick").
		Evidence(orDefault(data.ExtraInfo, "mostly playing one or two champions")).
		Suggestion("Learn at least 3 champions across different archetypes").
		Suggestion("Understand archetypes: tank, assassin, mage, and so on").
		Suggestion("Pick based on team composition need, not just comfort").
		Suggestion("Get comfortable with a new champion in the practice tool first").
		Priority(2).
		Category(CategoryChampion).
		Perspective(s.Perspective()).
		Build()
}

func (s selfImprovementStrategy) championDependency(data ProblemData) *GameAdvice {
	return NewBuilder().
		Title("Reduce reliance on a single champion").
		Problem("You're over-reliant on one champion that isn't winning for you").
		Evidence(orDefault(data.ExtraInfo, "one champion makes up most of your games without good results")).
		Suggestion("Try other champions instead of defaulting to the same one").
		Suggestion("Look at your win-rate data to find what's actually working").
		Suggestion("Expand your pool with champions that fill the same role").
		Suggestion("Adjust your champion choices as the meta shifts").
		Priority(2).
		Category(CategoryChampion).
		Perspective(s.Perspective()).
		Build()
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
