package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"cavesight/internal/domain"
	"cavesight/internal/engine"
	"cavesight/pkg/api"
	"cavesight/pkg/dungeon"
	"cavesight/pkg/logger"
	"cavesight/pkg/utils"

	"github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) < 3 {
		printHelp()
		return
	}

	// Карта идет в stdout, лог генератора - в stderr и только предупреждения
	logger.InitWithOutput(os.Stderr)
	logger.Log.SetLevel(logrus.WarnLevel)

	// Зерно - число или любое слово
	seed, err := strconv.ParseUint(os.Args[2], 10, 64)
	if err != nil {
		seed = utils.StringToSeed(os.Args[2])
	}
	cfg := engine.NewConfig()
	cfg.Seed = seed
	if len(os.Args) > 3 {
		if cfg.Layout, err = dungeon.ParseLayout(os.Args[3]); err != nil {
			fmt.Println(err)
			return
		}
	}
	if len(os.Args) > 4 {
		if cfg.Depth, err = strconv.Atoi(os.Args[4]); err != nil {
			fmt.Printf("Invalid depth: %v\n", err)
			return
		}
	}

	s := engine.NewSession(cfg)
	defer s.Close()

	switch os.Args[1] {
	case "gen":
		// Карта целиком: WIZ_LIGHT с wizard запоминает все клетки
		cmd, _ := domain.NewCommand(domain.ActionWizLight, "cavemap", nil)
		if _, err := s.Execute(cmd); err != nil {
			fmt.Println(err)
			return
		}
		printFrame(s.Frame())
	case "view":
		printFrame(s.Frame())
	case "noise":
		printLayer(s.NoiseLayer(), 10)
	case "scent":
		printLayer(s.ScentLayer(), 1)
	case "summary":
		out, _ := json.MarshalIndent(s.Summary(), "", "  ")
		fmt.Println(string(out))
	default:
		printHelp()
	}
}

// printFrame печатает кадр как ASCII. Неизвестные клетки - пробелы.
func printFrame(f api.Frame) {
	rows := make([][]byte, f.Grid.Height)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(" ", f.Grid.Width))
	}
	for _, cv := range f.Map {
		if cv.Symbol != "" {
			rows[cv.Y][cv.X] = cv.Symbol[0]
		}
	}
	for _, row := range rows {
		fmt.Println(strings.TrimRight(string(row), " "))
	}
	fmt.Printf("depth %d, observer %d,%d, seen %d\n",
		f.Depth, f.Observer.X, f.Observer.Y, f.Turn.Seen)
}

// printLayer печатает числовой слой: последняя цифра value/div, 0 - точка.
func printLayer(lv api.LayerView, div int) {
	var sb strings.Builder
	for y := 0; y < lv.Height; y++ {
		for x := 0; x < lv.Width; x++ {
			v := lv.Values[y*lv.Width+x]
			if v == 0 {
				sb.WriteByte('.')
				continue
			}
			sb.WriteByte(byte('0' + (v/div)%10))
		}
		sb.WriteByte('\n')
	}
	fmt.Print(sb.String())
}

func printHelp() {
	fmt.Println(`Cavemap - уровни и поля в терминале
Usage: cavemap <command> <seed> [rooms|cave] [depth]
Commands:
  gen      - весь уровень (как после WIZ_LIGHT)
  view     - то, что наблюдатель видит и помнит после первого хода
  noise    - поле шума (десятки стоимости)
  scent    - поле запаха (последняя цифра времени)
  summary  - сводка по уровню в JSON
Seed: число или слово (слово хешируется).`)
}
