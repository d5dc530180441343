// Package content holds narrative tables: scenario-keyed news pools and the
// per-round CEO directives. This is presentation data the engine never reads;
// the only randomness of the system (news sampling) lives here, outside
// settlement.
package content

import "math/rand"

// Library serves news and directives. A nil rng-free zero value is not
// usable; construct with New.
type Library struct {
	news    map[string][]string
	scripts map[int]string
}

// New returns a library with the built-in tables.
func New() *Library {
	return &Library{news: defaultNews, scripts: defaultScripts}
}

// SampleNews returns up to n headlines for a scenario in random order.
// An unknown scenario yields an empty feed.
func (l *Library) SampleNews(scenario string, n int, rng *rand.Rand) []string {
	pool := l.news[scenario]
	if len(pool) == 0 {
		return nil
	}
	idx := rng.Perm(len(pool))
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]string, 0, n)
	for _, i := range idx[:n] {
		out = append(out, pool[i])
	}
	return out
}

// Directive returns the CEO script for a round, or a waiting message.
func (l *Library) Directive(round int) string {
	if s, ok := l.scripts[round]; ok {
		return s
	}
	return "Waiting for directive..."
}

var defaultNews = map[string][]string{
	"A": {
		"BBG: Consumer confidence index hits 98.2",
		"CNBC: Tech sector hiring spree continues",
		"WSJ: Housing starts beat expectations by 15%",
		"RTRS: Retail sales surge in Q3",
		"FT: Global trade tensions ease",
		"BBG: Banks report record low delinquency rates",
		"CNBC: Millennial home ownership drives boom",
		"WSJ: Luxury spending index hits all-time high",
		"RTRS: Small business optimism at record levels",
		"FT: Corporate profits soar, S&P 500 rallies",
		"BBG: Credit card utilization ticks up",
		"CNBC: Fintech unicorn enters 'Buy Now Pay Later'",
		"WSJ: Auto sales hit annualized rate of 18M",
		"RTRS: Tourism rebound: Airlines full",
		"FT: Construction employment grows",
	},
	"B": {
		"BBG: Inflation ticks up to 4.2%",
		"CNBC: Housing market shows signs of cooling",
		"WSJ: Auto loan delinquencies rise",
		"RTRS: Retailers report inventory buildup",
		"FT: Tech layoffs announced",
		"BBG: Credit card roll-rates deteriorate",
		"CNBC: Consumer confidence dips",
		"WSJ: Bond yield curve flattens",
		"RTRS: Small business borrowing costs rise",
		"FT: Corporate debt levels concern regulators",
		"BBG: Used car prices begin to fall",
		"CNBC: 'Soft landing' still possible",
		"WSJ: Mortgage applications drop 10%",
		"RTRS: Personal savings rate hits 10-year low",
		"FT: Manufacturing orders stall",
	},
	"C": {
		"ALERT: MARKET CRASH - S&P 500 PLUNGES 15%",
		"BBG: Unemployment spikes to 7.5%",
		"CNBC: Major retailer files Chapter 11",
		"WSJ: Housing bubble bursts? Prices down 10%",
		"RTRS: Credit card charge-offs soar",
		"FT: Liquidity crunch in bond markets",
		"BBG: Central bank cuts rates to zero",
		"CNBC: Banks freeze credit lines",
		"WSJ: 'Cash is King' - Investors flee",
		"RTRS: Global recession confirmed",
		"FT: Auto industry seeks bailout",
		"BBG: Consumer sentiment hits lowest level",
		"CNBC: Supply chains paralyzed",
		"WSJ: Foreclosure filings double",
		"RTRS: Student loan default crisis",
	},
}

var defaultScripts = map[int]string{
	1: "Welcome to Q1. I promised the Street a 'transformational' year. My reputation—and my stock options—are riding on this growth narrative. I don't want to hear about 'risk appetite' or 'prudence.' I want to see market share being stolen. If we miss the volume targets, I will find a management team that can hit them. Get aggressive.",
	2: "The stock is up 5% because *I* convinced the analysts we're a growth machine. Don't screw this up for me. Risk is complaining about 'quality,' but they always complain. I want you to double down. If we slow down now, the Board will ask questions I don't want to answer. Push the line assignments. Make the numbers look good.",
	3: "I just saw the numbers from BigBank Corp. Their CEO is bragging about their balance transfer volume in the FT. I will not be outmaneuvered by that amateur. Go aggressive on BTs. I don't care if the margins are thin; I want the headline number to look massive for the shareholder letter. Feed the ego, feed the stock price.",
	4: "Okay, listen. I'm seeing some ugly inflation numbers. If this goes south, I need to know who to blame. Keep growing—we need the revenue to cover up any cracks—but start tightening the back-end criteria silently. If NPLs spike, I'm going to tell the Board it was 'execution error' at the desk level. Don't let that be you.",
	5: "Why are the provision numbers creeping up? I explicitly told you to manage quality *while* growing! It feels like you aren't listening to my strategy. Fix the collections efficiency. If we miss the EPS target by a cent, I'm clawing back your bonuses to save face with the investors. Fix it, or I'm bringing in consultants.",
	6: "The stock took a hit this morning. The Board is getting nervous, but they still want their dividend. We cannot afford a capital raise right now—it would dilute *my* holdings. Your mandate is simple: Maintain profitability to protect the share price. If you have to burn OpEx to chase collections, do it. Just don't let the delinquencies spike before my earnings call.",
	7: "EMERGENCY MEETING. The market is crashing. Who modeled this stress test? Obviously, *your* models were wrong. I'm telling the Board this is a 'systemic event' nobody could foresee, but internally, I know you let the credit quality slip. Freeze everything. If we breach regulatory minimums, the Feds will step in, and I am not going to jail for your incompetence.",
	8: "I'm fighting for my life in these Board meetings. They are looking for a fall guy. Don't give them a reason to look at this desk. Cut the customers off. I don't care about 'brand damage'—I care about solvency. Hoard cash. Make the balance sheet look bulletproof so I can survive the AGM next month.",
	9: "We might survive this, barely. If we do, it's because of my steady hand at the wheel. If we don't, well, I've noted who pushed for volume back in Q1. Clear the bad debt off the books so we can start fresh next year. Don't expect bonuses; be grateful you have a badge to swipe tomorrow.",
}
