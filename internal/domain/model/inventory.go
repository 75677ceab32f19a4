package model

// Inventory は商品のインメモリコレクション。
// 追加順を保持する（永続化の並びを安定させるため）。
type Inventory struct {
	byID  map[string]*Product
	order []string
}

func NewInventory(products []Product) *Inventory {
	v := &Inventory{byID: make(map[string]*Product, len(products))}
	for _, p := range products {
		v.Add(p)
	}
	return v
}

// Get はIDで商品を引く。見つかった商品は呼び出し側で直接変更できる。
func (v *Inventory) Get(id string) (*Product, bool) {
	p, ok := v.byID[id]
	return p, ok
}

// Add は商品を追加する。ID重複のときはfalse。
func (v *Inventory) Add(p Product) bool {
	if _, ok := v.byID[p.ID]; ok {
		return false
	}
	cp := p
	v.byID[p.ID] = &cp
	v.order = append(v.order, p.ID)
	return true
}

// Remove は商品を取り除く。存在しなければfalse。
func (v *Inventory) Remove(id string) bool {
	if _, ok := v.byID[id]; !ok {
		return false
	}
	delete(v.byID, id)
	for i, pid := range v.order {
		if pid == id {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}
	return true
}

// Products は追加順のコピーを返す（保存用）。
func (v *Inventory) Products() []Product {
	out := make([]Product, 0, len(v.order))
	for _, id := range v.order {
		out = append(out, *v.byID[id])
	}
	return out
}

func (v *Inventory) Len() int {
	return len(v.order)
}
