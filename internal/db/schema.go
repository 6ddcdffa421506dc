package db

const schema = `
-- Places table
CREATE TABLE IF NOT EXISTS places (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    icon_name TEXT NOT NULL DEFAULT 'box',
    color_hex TEXT NOT NULL DEFAULT '#3B82F6'
);

-- Food items table; deleting a place deletes its items
CREATE TABLE IF NOT EXISTS food_items (
    id TEXT PRIMARY KEY,
    place_id TEXT NOT NULL,
    name TEXT NOT NULL,
    quantity INTEGER NOT NULL DEFAULT 0,
    notes TEXT DEFAULT '',
    expiration_date DATETIME,
    position INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (place_id) REFERENCES places(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_food_items_place ON food_items(place_id);

-- Shopping list table
CREATE TABLE IF NOT EXISTS shopping_items (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    desired_quantity INTEGER NOT NULL DEFAULT 1,
    notes TEXT DEFAULT '',
    source TEXT NOT NULL DEFAULT 'manual',
    status TEXT NOT NULL DEFAULT 'to_buy',
    linked_food_item_id TEXT,
    last_place_id TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    normalized_key TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_shopping_items_key ON shopping_items(normalized_key);

-- Pending local reminders
CREATE TABLE IF NOT EXISTS reminders (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    body TEXT DEFAULT '',
    fire_at DATETIME NOT NULL
);
`
