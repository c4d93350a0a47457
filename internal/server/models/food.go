package models

import "encoding/json"

// Food is one logged consumption record. Entries form a forest through
// ParentID; at most one of PhotoID and PhotoGroupID is set.
type Food struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"-"`
	Date         Date    `json:"date"`
	Time         *string `json:"time"`
	Name         string  `json:"name"`
	Quantity     string  `json:"quantity"`
	Calories     Number  `json:"calories"`
	Protein      Number  `json:"protein"`
	ParentID     *int64  `json:"parent_id"`
	PhotoID      *int64  `json:"photo_id"`
	PhotoGroupID *int64  `json:"photo_group_id"`
	Premade      bool    `json:"premade"`
	Finished     *bool   `json:"finished"`
}

// FoodInput is a submitted food tree. Nil pointers mean "not in the
// payload": on update they leave the stored value alone. PhotoIDs follows
// the same rule, so an absent list keeps the current photo linkage while
// an empty one clears it.
type FoodInput struct {
	ID       *int64      `json:"id"`
	Date     *Date       `json:"date"`
	Time     *string     `json:"time"`
	Name     *string     `json:"name"`
	Quantity *string     `json:"quantity"`
	Calories *Number     `json:"calories"`
	Protein  *Number     `json:"protein"`
	Premade  *bool       `json:"premade"`
	Finished *bool       `json:"finished"`
	PhotoIDs *[]int64    `json:"photo_ids"`
	Children []FoodInput `json:"children"`
}

// ApplyTo copies the allow-listed fields present in the payload onto f.
// Date is copied too; callers force it afterwards for children.
func (in *FoodInput) ApplyTo(f *Food) {
	if in.Date != nil {
		f.Date = *in.Date
	}
	if in.Time != nil {
		f.Time = in.Time
	}
	if in.Name != nil {
		f.Name = *in.Name
	}
	if in.Quantity != nil {
		f.Quantity = *in.Quantity
	}
	if in.Calories != nil {
		f.Calories = *in.Calories
	}
	if in.Protein != nil {
		f.Protein = *in.Protein
	}
	if in.Premade != nil {
		f.Premade = *in.Premade
	}
	if in.Finished != nil {
		f.Finished = in.Finished
	}
}

// FoodView is the rendered form of a Food. The optional parts are only
// written out when Options asks for them, even if they are empty.
type FoodView struct {
	Food
	PhotoIDs    []int64
	ChildrenIDs []int64
	Children    []FoodView
	Options     RenderOptions
}

func (v FoodView) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(v.Food)
	if err != nil {
		return nil, err
	}
	o := v.Options
	if !o.Photos && !o.ChildrenIDs && !o.Children {
		return base, nil
	}

	fields := map[string]any{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	if o.Photos {
		fields["photo_ids"] = nonNil(v.PhotoIDs)
	}
	if o.ChildrenIDs {
		fields["children_ids"] = nonNil(v.ChildrenIDs)
	}
	if o.Children {
		children := v.Children
		if children == nil {
			children = []FoodView{}
		}
		fields["children"] = children
	}
	return json.Marshal(fields)
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

// RenderOptions selects what FoodView inlines. The flags are independent
// and apply at every level of a rendered subtree.
type RenderOptions struct {
	Photos      bool
	ChildrenIDs bool
	Children    bool
}
