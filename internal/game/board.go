package game

import (
	"fmt"
	"strings"

	"github.com/ivanlay/dicewarsjs-sub001/internal/game/core"
)

// ANSI color codes for the terminal board printer.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
	colorGray   = "\033[90m"
)

var playerColors = []string{
	colorRed, colorBlue, colorGreen, colorYellow,
	colorPurple, colorCyan, colorWhite, colorGray,
}

func playerColor(playerID int) string {
	if playerID >= 0 && playerID < len(playerColors) {
		return playerColors[playerID]
	}
	return colorWhite
}

// RenderMap renders the cell grid with one glyph per cell: the owner's
// letter, or the dice count at a territory's anchor cell. Odd rows are
// indented half a step to suggest the hex offset.
func RenderMap(m *core.Map) string {
	const playerSymbols = "ABCDEFGH"

	anchors := make(map[int]int) // cell -> territory id
	for _, id := range m.ActiveIDs() {
		anchors[m.Territory(id).Anchor] = id
	}

	var sb strings.Builder
	for y := 0; y < m.Grid.H; y++ {
		if y%2 == 1 {
			sb.WriteString(" ")
		}
		for x := 0; x < m.Grid.W; x++ {
			idx := m.Grid.Idx(x, y)
			id := m.CellOwner[idx]
			if id == core.Sea {
				sb.WriteString(colorGray + "· " + colorReset)
				continue
			}
			t := m.Territory(id)
			glyph := string(playerSymbols[t.Owner%len(playerSymbols)])
			if aid, ok := anchors[idx]; ok {
				glyph = fmt.Sprintf("%d", m.Territory(aid).Dice)
			}
			sb.WriteString(playerColor(t.Owner) + glyph + " " + colorReset)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Board renders the current map followed by one status line per player.
func (e *Engine) Board() string {
	var sb strings.Builder
	sb.WriteString(RenderMap(e.gs.Map))

	for pid := 0; pid < e.gs.PlayerCount; pid++ {
		p := e.gs.Players[pid]
		status := "ALIVE"
		if !p.Alive() {
			status = "OUT"
		}
		sb.WriteString(fmt.Sprintf("%sPlayer %d%s: %d territories, %d dice, group %d, stock %d [%s]\n",
			playerColor(pid), pid, colorReset,
			p.TerritoryCount, p.DiceTotal, p.LargestGroup, p.Stock, status))
	}
	return sb.String()
}
