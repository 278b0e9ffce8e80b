package extract

// ExtractOrder returns every integer in the answer in order of appearance.
func ExtractOrder(answer string) ([]int, error) {
	order := atoiAll(allDigits.FindAllString(answer, -1))
	if len(order) == 0 {
		return nil, unparseable("topological", "no node ids")
	}
	return order, nil
}
